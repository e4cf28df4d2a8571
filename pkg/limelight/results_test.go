package limelight

import (
	"testing"
)

func TestParseResultEmptyObject(t *testing.T) {
	res, err := ParseResult([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if res.PipelineType != nil || res.PipelineID != nil {
		t.Errorf("Expected absent pipeline fields, got type=%v id=%v", res.PipelineType, res.PipelineID)
	}
	if res.Tx != nil || res.Ty != nil || res.Ta != nil || res.V != nil {
		t.Errorf("Expected absent targeting fields")
	}
	if res.Botpose != nil || res.BotposeMT2 != nil {
		t.Errorf("Expected absent pose vectors")
	}
	if len(res.Barcode) != 0 || len(res.Classifier) != 0 || len(res.Detector) != 0 ||
		len(res.Fiducial) != 0 || len(res.Retro) != 0 {
		t.Errorf("Expected empty sub-result containers")
	}
	if res.HasTargets() {
		t.Errorf("Empty result should not report targets")
	}
}

func TestParseResultUnknownKeysIgnored(t *testing.T) {
	res, err := ParseResult([]byte(`{"somefuturefield": 42, "tx": 1.0}`))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}
	if res.Tx == nil || *res.Tx != 1.0 {
		t.Errorf("Expected tx=1.0, got %v", res.Tx)
	}
}

func TestParseResultFiducial(t *testing.T) {
	data := []byte(`{"Fiducial":[{"fID":3,"fam":"16h5","tx":1.5,"ty":-2.0}]}`)
	res, err := ParseResult(data)
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if len(res.Fiducial) != 1 {
		t.Fatalf("Expected 1 fiducial, got %d", len(res.Fiducial))
	}
	fid := res.Fiducial[0]
	if fid.ID == nil || *fid.ID != 3 {
		t.Errorf("Expected fID=3, got %v", fid.ID)
	}
	if fid.Family == nil || *fid.Family != "16h5" {
		t.Errorf("Expected fam=16h5, got %v", fid.Family)
	}
	if fid.Tx == nil || *fid.Tx != 1.5 {
		t.Errorf("Expected tx=1.5, got %v", fid.Tx)
	}
	if fid.Ty == nil || *fid.Ty != -2.0 {
		t.Errorf("Expected ty=-2.0, got %v", fid.Ty)
	}
	if fid.Ta != nil || fid.Points != nil {
		t.Errorf("Expected unset fiducial fields to stay absent")
	}

	// Everything outside the fiducial array stays at its default.
	if res.Tx != nil || res.PipelineType != nil || len(res.Detector) != 0 {
		t.Errorf("Expected all other top-level fields absent")
	}
}

func TestParseResultMT2WireKeys(t *testing.T) {
	data := []byte(`{
		"botpose": [1, 2, 3, 0, 0, 90],
		"botpose_orb": [4, 5, 6, 0, 0, 45],
		"botpose_orb_wpiblue": [7, 8, 9, 0, 0, 0],
		"botpose_orb_wpired": [10, 11, 12, 0, 0, 0]
	}`)
	res, err := ParseResult(data)
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}
	if len(res.Botpose) != 6 || res.Botpose[0] != 1 {
		t.Errorf("Expected botpose from primary key, got %v", res.Botpose)
	}
	if len(res.BotposeMT2) != 6 || res.BotposeMT2[0] != 4 {
		t.Errorf("Expected BotposeMT2 from botpose_orb, got %v", res.BotposeMT2)
	}
	if len(res.BotposeMT2WPIBlue) != 6 || res.BotposeMT2WPIBlue[0] != 7 {
		t.Errorf("Expected BotposeMT2WPIBlue from botpose_orb_wpiblue, got %v", res.BotposeMT2WPIBlue)
	}
	if len(res.BotposeMT2WPIRed) != 6 || res.BotposeMT2WPIRed[0] != 10 {
		t.Errorf("Expected BotposeMT2WPIRed from botpose_orb_wpired, got %v", res.BotposeMT2WPIRed)
	}
}

func TestParseResultMixedPipelines(t *testing.T) {
	data := []byte(`{
		"pipeline_type": "pipe_detector",
		"pipeline_id": 2,
		"v": 1,
		"tx": 4.25, "ty": -1.5, "ta": 0.8,
		"txnc": 4.5, "tync": -1.25,
		"cl": 2.1, "tl": 7.9, "ts": 123456.5,
		"Detector": [
			{"class": "note", "classID": 0, "conf": 0.91, "tx": 3.0, "pts": [[0, 0], [10, 0], [10, 10], [0, 10]]}
		],
		"Classifier": [{"class": "cone", "classID": 1, "conf": 0.55}],
		"Barcode": [{"fam": "QR", "data": "hello"}],
		"Retro": [{"ta": 1.25, "t6c_ts": [0, 0, 1, 0, 0, 0]}]
	}`)
	res, err := ParseResult(data)
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if !res.HasTargets() {
		t.Errorf("Expected HasTargets with v=1")
	}
	if res.PipelineType == nil || *res.PipelineType != "pipe_detector" {
		t.Errorf("Expected pipeline_type, got %v", res.PipelineType)
	}
	if res.PipelineID == nil || *res.PipelineID != 2 {
		t.Errorf("Expected pipeline_id=2, got %v", res.PipelineID)
	}

	if len(res.Detector) != 1 {
		t.Fatalf("Expected 1 detection, got %d", len(res.Detector))
	}
	det := res.Detector[0]
	if det.Class == nil || *det.Class != "note" {
		t.Errorf("Expected class=note, got %v", det.Class)
	}
	if det.ClassID == nil || *det.ClassID != 0 {
		t.Errorf("Expected classID=0, got %v", det.ClassID)
	}
	if det.Confidence == nil || *det.Confidence != 0.91 {
		t.Errorf("Expected conf=0.91, got %v", det.Confidence)
	}
	if len(det.Points) != 4 || len(det.Points[1]) != 2 || det.Points[1][0] != 10 {
		t.Errorf("Expected 4 corner points, got %v", det.Points)
	}

	if len(res.Classifier) != 1 || res.Classifier[0].ClassID == nil || *res.Classifier[0].ClassID != 1 {
		t.Errorf("Bad classifier result: %+v", res.Classifier)
	}
	if len(res.Barcode) != 1 || res.Barcode[0].Data == nil || *res.Barcode[0].Data != "hello" {
		t.Errorf("Bad barcode result: %+v", res.Barcode)
	}
	if len(res.Retro) != 1 || len(res.Retro[0].CamPoseTS) != 6 {
		t.Errorf("Bad retro result: %+v", res.Retro)
	}
}

func TestParseResultTypeMismatch(t *testing.T) {
	_, err := ParseResult([]byte(`{"tx": "wide"}`))
	if err == nil {
		t.Fatal("Expected error for string tx")
	}
	if !IsSchema(err) {
		t.Errorf("Expected SchemaError, got %T: %v", err, err)
	}
}

func TestParseResultInvalidJSON(t *testing.T) {
	_, err := ParseResult([]byte(`not json at all`))
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !IsSchema(err) {
		t.Errorf("Expected SchemaError, got %T: %v", err, err)
	}
}
