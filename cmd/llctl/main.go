// llctl - administrative CLI for a Limelight camera.
//
// Usage:
//
//	llctl [flags] <command> [args]
//
// Commands:
//
//	status                      print the camera status report
//	hwreport                    print the hardware report
//	pipeline get [index]        print the default pipeline, or the one at index
//	pipeline switch <index>     make the pipeline at index active
//	pipeline reload             reload the active pipeline
//	snapshot capture <name>     save the current frame under name
//	snapshot list               list stored snapshots
//	snapshot delete <name|all>  delete one snapshot, or all of them
//	cal get <source>            print calibration (default|file|eeprom|latest)
//	cal delete <source>         delete calibration (file|eeprom|latest)
//	python-inputs <v1> [...]    send inputs to the active python pipeline
//	orientation <yaw>           send the robot's field-relative yaw
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/teslashibe/go-limelight/internal/config"
	"github.com/teslashibe/go-limelight/internal/log"
	"github.com/teslashibe/go-limelight/pkg/limelight"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		host       = flag.String("host", "", "camera host (overrides config)")
		port       = flag.Int("port", 0, "camera port (overrides config)")
	)
	flag.Parse()

	cfg, level, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	log.Init(level)

	client, err := limelight.New(cfg)
	if err != nil {
		fail(err)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := run(ctx, client, args); err != nil {
		fail(err)
	}
}

func run(ctx context.Context, client *limelight.Client, args []string) error {
	switch args[0] {
	case "status":
		return printJSON(client.GetStatus(ctx))
	case "hwreport":
		return printJSON(client.GetHardwareReport(ctx))
	case "pipeline":
		return runPipeline(ctx, client, args[1:])
	case "snapshot":
		return runSnapshot(ctx, client, args[1:])
	case "cal":
		return runCalibration(ctx, client, args[1:])
	case "python-inputs":
		inputs := make([]float64, 0, len(args)-1)
		for _, a := range args[1:] {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("bad input %q: %w", a, err)
			}
			inputs = append(inputs, v)
		}
		return client.UpdatePythonInputs(ctx, inputs)
	case "orientation":
		if len(args) != 2 {
			return fmt.Errorf("usage: orientation <yaw>")
		}
		yaw, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("bad yaw %q: %w", args[1], err)
		}
		return client.UpdateRobotOrientation(ctx, yaw)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runPipeline(ctx context.Context, client *limelight.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: pipeline get|switch|reload")
	}
	switch args[0] {
	case "get":
		if len(args) == 1 {
			return printJSON(client.GetDefaultPipeline(ctx))
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad index %q: %w", args[1], err)
		}
		return printJSON(client.GetPipelineAtIndex(ctx, index))
	case "switch":
		if len(args) != 2 {
			return fmt.Errorf("usage: pipeline switch <index>")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad index %q: %w", args[1], err)
		}
		return client.SwitchPipeline(ctx, index)
	case "reload":
		return client.ReloadPipeline(ctx)
	default:
		return fmt.Errorf("unknown pipeline command %q", args[0])
	}
}

func runSnapshot(ctx context.Context, client *limelight.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: snapshot capture|list|delete")
	}
	switch args[0] {
	case "capture":
		if len(args) != 2 {
			return fmt.Errorf("usage: snapshot capture <name>")
		}
		return client.CaptureSnapshot(ctx, args[1])
	case "list":
		names, err := client.GetSnapshotManifest(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: snapshot delete <name|all>")
		}
		if args[1] == "all" {
			return client.DeleteSnapshots(ctx)
		}
		return client.DeleteSnapshot(ctx, args[1])
	default:
		return fmt.Errorf("unknown snapshot command %q", args[0])
	}
}

func runCalibration(ctx context.Context, client *limelight.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cal get|delete <source>")
	}
	switch args[0] {
	case "get":
		return printJSON(client.GetCalibration(ctx, args[1]))
	case "delete":
		switch args[1] {
		case "latest":
			return client.DeleteCalibrationLatest(ctx)
		case "eeprom":
			return client.DeleteCalibrationEEPROM(ctx)
		case "file":
			return client.DeleteCalibrationFile(ctx)
		default:
			return fmt.Errorf("cannot delete calibration source %q", args[1])
		}
	default:
		return fmt.Errorf("unknown cal command %q", args[0])
	}
}

func printJSON(data json.RawMessage, err error) error {
	if err != nil {
		return err
	}
	var buf map[string]any
	if json.Unmarshal(data, &buf) == nil {
		pretty, _ := json.MarshalIndent(buf, "", "  ")
		fmt.Println(string(pretty))
		return nil
	}
	fmt.Println(string(data))
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
