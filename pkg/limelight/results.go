package limelight

import (
	"encoding/json"
	"errors"
)

// Result is one full telemetry snapshot from the camera's /results endpoint.
//
// Which fields the camera populates depends on the active pipeline type, so
// every scalar is a pointer and every vector is a nil-able slice: a nil field
// means "not produced by this pipeline", never zero. Callers must test
// presence rather than compare against zero values. The five sub-result
// slices default to empty.
//
// A Result is immutable once parsed and safe to share across goroutines.
type Result struct {
	// Sub-result containers, keyed by pipeline family.
	Barcode    []BarcodeResult    `json:"Barcode"`
	Classifier []ClassifierResult `json:"Classifier"`
	Detector   []DetectorResult   `json:"Detector"`
	Fiducial   []FiducialResult   `json:"Fiducial"`
	Retro      []ColorResult      `json:"Retro"`

	// Pipeline identity.
	PipelineType *string `json:"pipeline_type"`
	PipelineID   *int    `json:"pipeline_id"`

	// Generic targeting values.
	Tx          *float64 `json:"tx"`
	Ty          *float64 `json:"ty"`
	Ta          *float64 `json:"ta"`
	Txnc        *float64 `json:"txnc"`
	Tync        *float64 `json:"tync"`
	Cl          *float64 `json:"cl"`
	Tl          *float64 `json:"tl"`
	Ts          *float64 `json:"ts"`
	V           *float64 `json:"v"`
	FocusMetric *float64 `json:"focus_metric"`

	// Robot pose estimates (6-DOF vectors).
	Botpose        []float64 `json:"botpose"`
	BotposeWPIBlue []float64 `json:"botpose_wpiblue"`
	BotposeWPIRed  []float64 `json:"botpose_wpired"`

	// MT2 odometry-fused pose estimates. The camera publishes these under
	// the legacy "botpose_orb" wire keys.
	BotposeMT2        []float64 `json:"botpose_orb"`
	BotposeMT2WPIBlue []float64 `json:"botpose_orb_wpiblue"`
	BotposeMT2WPIRed  []float64 `json:"botpose_orb_wpired"`

	StdevMT1 []float64 `json:"stdev_mt1"`
	StdevMT2 []float64 `json:"stdev_mt2"`

	BotposeTagCount *int     `json:"botpose_tagcount"`
	BotposeSpan     *float64 `json:"botpose_span"`
	BotposeAvgDist  *float64 `json:"botpose_avgdist"`
	BotposeAvgArea  *float64 `json:"botpose_avgarea"`

	// Outputs from a python SnapScript pipeline.
	PythonOut []float64 `json:"python_out"`

	// Camera pose in robot space.
	T6cRs []float64 `json:"t6c_rs"`
}

// HasTargets returns true if the camera reports at least one valid target.
func (r *Result) HasTargets() bool {
	return r.V != nil && *r.V == 1
}

// BarcodeResult is one decoded barcode from a barcode pipeline.
type BarcodeResult struct {
	Family    *string     `json:"fam"`
	Data      *string     `json:"data"`
	Txp       *float64    `json:"txp"`
	Typ       *float64    `json:"typ"`
	Tx        *float64    `json:"tx"`
	Ty        *float64    `json:"ty"`
	TxNoCross *float64    `json:"tx_nocross"`
	TyNoCross *float64    `json:"ty_nocross"`
	Ta        *float64    `json:"ta"`
	Points    [][]float64 `json:"pts"`
}

// ClassifierResult is one class prediction from a neural classifier pipeline.
type ClassifierResult struct {
	Class      *string  `json:"class"`
	ClassID    *int     `json:"classID"`
	Confidence *float64 `json:"conf"`
}

// DetectorResult is one bounding-box detection from a neural detector pipeline.
type DetectorResult struct {
	Class      *string     `json:"class"`
	ClassID    *int        `json:"classID"`
	Confidence *float64    `json:"conf"`
	Ta         *float64    `json:"ta"`
	Txp        *float64    `json:"txp"`
	Typ        *float64    `json:"typ"`
	Tx         *float64    `json:"tx"`
	Ty         *float64    `json:"ty"`
	TxNoCross  *float64    `json:"tx_nocross"`
	TyNoCross  *float64    `json:"ty_nocross"`
	Points     [][]float64 `json:"pts"`
}

// FiducialResult is one detected fiducial (AprilTag) with its pose transforms.
// The t6* vectors are 6-DOF poses named <subject>-<space>: camera, robot,
// target, field space.
type FiducialResult struct {
	ID             *int        `json:"fID"`
	Family         *string     `json:"fam"`
	Skew           []float64   `json:"skew"`
	CamPoseTS      []float64   `json:"t6c_ts"`
	RobotPoseFS    []float64   `json:"t6r_fs"`
	RobotPoseFSMT2 []float64   `json:"t6r_fs_orb"`
	RobotPoseTS    []float64   `json:"t6r_ts"`
	TargetPoseCS   []float64   `json:"t6t_cs"`
	TargetPoseRS   []float64   `json:"t6t_rs"`
	Ta             *float64    `json:"ta"`
	Txp            *float64    `json:"txp"`
	Typ            *float64    `json:"typ"`
	Tx             *float64    `json:"tx"`
	Ty             *float64    `json:"ty"`
	TxNoCross      *float64    `json:"tx_nocross"`
	TyNoCross      *float64    `json:"ty_nocross"`
	Points         [][]float64 `json:"pts"`
}

// ColorResult is one color/retroreflective target.
type ColorResult struct {
	CamPoseTS    []float64   `json:"t6c_ts"`
	RobotPoseFS  []float64   `json:"t6r_fs"`
	RobotPoseTS  []float64   `json:"t6r_ts"`
	TargetPoseCS []float64   `json:"t6t_cs"`
	TargetPoseRS []float64   `json:"t6t_rs"`
	Ta           *float64    `json:"ta"`
	Txp          *float64    `json:"txp"`
	Typ          *float64    `json:"typ"`
	Tx           *float64    `json:"tx"`
	Ty           *float64    `json:"ty"`
	TxNoCross    *float64    `json:"tx_nocross"`
	TyNoCross    *float64    `json:"ty_nocross"`
	Points       [][]float64 `json:"pts"`
}

// ParseResult decodes one /results response body. Unrecognized keys are
// ignored and absent keys leave fields at their defaults; a present value
// of the wrong type yields a SchemaError.
func ParseResult(data []byte) (*Result, error) {
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaError{Field: typeErr.Field, Err: err}
		}
		return nil, &SchemaError{Err: err}
	}
	return &res, nil
}
