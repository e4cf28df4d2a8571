package limelight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// MaxPythonInputs is the camera-side limit on python pipeline inputs.
const MaxPythonInputs = 32

// Neural network slots accepted by the upload endpoints.
const (
	NetworkTypeDetector   = "detector"
	NetworkTypeClassifier = "classifier"
)

func validNetworkType(nnType string) error {
	if nnType != NetworkTypeDetector && nnType != NetworkTypeClassifier {
		return &ConfigError{
			Param:  "network type",
			Reason: fmt.Sprintf("%q is not %q or %q", nnType, NetworkTypeDetector, NetworkTypeClassifier),
		}
	}
	return nil
}

// indexQuery builds an optional ?index=N query. A negative index means
// "the camera's default slot" and omits the parameter.
func indexQuery(index int) url.Values {
	if index < 0 {
		return nil
	}
	return url.Values{"index": {strconv.Itoa(index)}}
}

// GetStatus fetches the camera's status report.
func (c *Client) GetStatus(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.getJSON(ctx, "status", nil, &out)
	return out, err
}

// GetHardwareReport fetches the camera's hardware report.
func (c *Client) GetHardwareReport(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.getJSON(ctx, "hwreport", nil, &out)
	return out, err
}

// ReloadPipeline asks the camera to reload the active pipeline.
func (c *Client) ReloadPipeline(ctx context.Context) error {
	return c.postJSON(ctx, "reload-pipeline", nil, nil)
}

// SwitchPipeline makes the pipeline at index the active one.
func (c *Client) SwitchPipeline(ctx context.Context, index int) error {
	return c.postJSON(ctx, "pipeline-switch", url.Values{"index": {strconv.Itoa(index)}}, nil)
}

// GetDefaultPipeline fetches the camera's default pipeline configuration.
func (c *Client) GetDefaultPipeline(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.getJSON(ctx, "pipeline-default", nil, &out)
	return out, err
}

// GetPipelineAtIndex fetches the pipeline configuration stored at index.
func (c *Client) GetPipelineAtIndex(ctx context.Context, index int) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.getJSON(ctx, "pipeline-atindex", url.Values{"index": {strconv.Itoa(index)}}, &out)
	return out, err
}

// UpdatePipeline applies settings to the active pipeline. With flush set
// the camera persists the change to disk.
func (c *Client) UpdatePipeline(ctx context.Context, settings json.RawMessage, flush bool) error {
	f := "0"
	if flush {
		f = "1"
	}
	return c.postJSON(ctx, "update-pipeline", url.Values{"flush": {f}}, settings)
}

// UploadPipeline uploads a full pipeline configuration. A negative index
// targets the camera's default slot.
func (c *Client) UploadPipeline(ctx context.Context, pipeline json.RawMessage, index int) error {
	return c.postJSON(ctx, "upload-pipeline", indexQuery(index), pipeline)
}

// CaptureSnapshot saves the current frame on the camera under snapname.
func (c *Client) CaptureSnapshot(ctx context.Context, snapname string) error {
	return c.postJSON(ctx, "capture-snapshot", url.Values{"snapname": {snapname}}, nil)
}

// UploadSnapshot stores image data on the camera under snapname.
func (c *Client) UploadSnapshot(ctx context.Context, snapname string, image []byte) error {
	return c.postBytes(ctx, "upload-snapshot", url.Values{"snapname": {snapname}}, "application/octet-stream", image)
}

// GetSnapshotManifest lists the snapshots stored on the camera.
func (c *Client) GetSnapshotManifest(ctx context.Context) ([]string, error) {
	var out []string
	err := c.getJSON(ctx, "snapshotmanifest", nil, &out)
	return out, err
}

// DeleteSnapshot removes the named snapshot from the camera.
func (c *Client) DeleteSnapshot(ctx context.Context, snapname string) error {
	return c.deleteResource(ctx, "delete-snapshot", url.Values{"snapname": {snapname}})
}

// DeleteSnapshots removes all snapshots from the camera.
func (c *Client) DeleteSnapshots(ctx context.Context) error {
	return c.deleteResource(ctx, "delete-snapshots", nil)
}

// GetSnapscriptNames lists the python SnapScript names on the camera.
func (c *Client) GetSnapscriptNames(ctx context.Context) ([]string, error) {
	var out []string
	err := c.getJSON(ctx, "getsnapsscriptnames", nil, &out)
	return out, err
}

// UpdatePythonInputs sends inputs to the active python pipeline. The
// camera accepts between 1 and MaxPythonInputs values; anything else is
// rejected before the request is issued.
func (c *Client) UpdatePythonInputs(ctx context.Context, inputs []float64) error {
	if len(inputs) == 0 || len(inputs) > MaxPythonInputs {
		return &ConfigError{
			Param:  "python inputs",
			Reason: fmt.Sprintf("need 1..%d values, got %d", MaxPythonInputs, len(inputs)),
		}
	}
	return c.postJSON(ctx, "update-pythoninputs", nil, inputs)
}

// UpdateRobotOrientation tells the camera the robot's field-relative yaw
// in degrees, for MT2 pose estimation. The wire format is a 6-element
// array with only yaw populated.
func (c *Client) UpdateRobotOrientation(ctx context.Context, yaw float64) error {
	orientation := []float64{yaw, 0, 0, 0, 0, 0}
	return c.postJSON(ctx, "update-robotorientation", nil, orientation)
}

// UploadFieldMap uploads a field map (.fmap). A negative index targets
// the camera's default slot.
func (c *Client) UploadFieldMap(ctx context.Context, fieldMap json.RawMessage, index int) error {
	return c.postJSON(ctx, "upload-fieldmap", indexQuery(index), fieldMap)
}

// UploadNeuralNetwork uploads a neural network model. nnType must be
// NetworkTypeDetector or NetworkTypeClassifier; anything else fails with
// a ConfigError before any network traffic. A negative index targets the
// camera's default slot.
func (c *Client) UploadNeuralNetwork(ctx context.Context, nnType string, model []byte, index int) error {
	if err := validNetworkType(nnType); err != nil {
		return err
	}
	query := indexQuery(index)
	if query == nil {
		query = url.Values{}
	}
	query.Set("type", nnType)
	return c.postBytes(ctx, "upload-nn", query, "application/octet-stream", model)
}

// UploadNeuralNetworkLabels uploads the label file for a neural network.
// Same validation as UploadNeuralNetwork.
func (c *Client) UploadNeuralNetworkLabels(ctx context.Context, nnType string, labels string, index int) error {
	if err := validNetworkType(nnType); err != nil {
		return err
	}
	query := indexQuery(index)
	if query == nil {
		query = url.Values{}
	}
	query.Set("type", nnType)
	return c.postBytes(ctx, "upload-nnlabels", query, "text/plain", []byte(labels))
}

// GetCalibration fetches calibration data from the named source
// ("default", "file", "eeprom", "latest").
func (c *Client) GetCalibration(ctx context.Context, source string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.getJSON(ctx, "cal-"+source, nil, &out)
	return out, err
}

// GetCalibrationDefault fetches the factory calibration.
func (c *Client) GetCalibrationDefault(ctx context.Context) (json.RawMessage, error) {
	return c.GetCalibration(ctx, "default")
}

// GetCalibrationFile fetches the calibration stored on disk.
func (c *Client) GetCalibrationFile(ctx context.Context) (json.RawMessage, error) {
	return c.GetCalibration(ctx, "file")
}

// GetCalibrationEEPROM fetches the calibration stored in EEPROM.
func (c *Client) GetCalibrationEEPROM(ctx context.Context) (json.RawMessage, error) {
	return c.GetCalibration(ctx, "eeprom")
}

// GetCalibrationLatest fetches the most recent calibration run.
func (c *Client) GetCalibrationLatest(ctx context.Context) (json.RawMessage, error) {
	return c.GetCalibration(ctx, "latest")
}

// UpdateCalibrationEEPROM writes calibration data to EEPROM.
func (c *Client) UpdateCalibrationEEPROM(ctx context.Context, calibration json.RawMessage) error {
	return c.postJSON(ctx, "cal-eeprom", nil, calibration)
}

// UpdateCalibrationFile writes calibration data to disk.
func (c *Client) UpdateCalibrationFile(ctx context.Context, calibration json.RawMessage) error {
	return c.postJSON(ctx, "cal-file", nil, calibration)
}

// DeleteCalibrationLatest discards the most recent calibration run.
func (c *Client) DeleteCalibrationLatest(ctx context.Context) error {
	return c.deleteResource(ctx, "cal-latest", nil)
}

// DeleteCalibrationEEPROM clears the EEPROM calibration.
func (c *Client) DeleteCalibrationEEPROM(ctx context.Context) error {
	return c.deleteResource(ctx, "cal-eeprom", nil)
}

// DeleteCalibrationFile removes the on-disk calibration.
func (c *Client) DeleteCalibrationFile(ctx context.Context) error {
	return c.deleteResource(ctx, "cal-file", nil)
}
