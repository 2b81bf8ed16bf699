// internal/calibration/loader.go
package calibration

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	engineerrors "medadmit-engine/internal/common/errors"
)

// LoadFile reads a calibration bundle from a JSON file, validating it
// against the bundle schema and the semantic rules before returning.
// Malformed bundles are rejected here, at startup, never deep in a hot path.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, engineerrors.NewCalibrationInvalidError(fmt.Sprintf("read %s: %v", path, err))
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a calibration bundle from raw JSON.
func LoadBytes(data []byte) (*Bundle, error) {
	schemaLoader := gojsonschema.NewStringLoader(bundleSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, engineerrors.NewCalibrationInvalidError(fmt.Sprintf("schema validation: %v", err))
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, engineerrors.NewCalibrationInvalidError(strings.Join(msgs, "; "))
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, engineerrors.NewCalibrationInvalidError(fmt.Sprintf("unmarshal: %v", err))
	}

	applyBundleDefaults(&b)

	if err := validateBundle(&b); err != nil {
		return nil, err
	}

	return &b, nil
}

func applyBundleDefaults(b *Bundle) {
	if b.HardThresholdPenalty == 0 {
		b.HardThresholdPenalty = -2.0
	}
	for domain, p := range b.Experience {
		if p.Policy == "" {
			p.Policy = ThresholdNone
			b.Experience[domain] = p
		}
	}
}

// validateBundle enforces the semantic rules the JSON schema cannot express.
func validateBundle(b *Bundle) error {
	if err := validateTable("gpaTable", b.GPATable); err != nil {
		return err
	}
	if err := validateTable("mcatTable", b.MCATTable); err != nil {
		return err
	}

	if b.Publications.Diminishing <= 0 || b.Publications.Diminishing > 1 {
		return engineerrors.NewCalibrationInvalidError("publications.diminishing must be in (0, 1]")
	}

	for domain, p := range b.Experience {
		if p.Tau <= 0 {
			return engineerrors.NewCalibrationInvalidError(
				fmt.Sprintf("experience.%s.tau must be positive", domain))
		}
		switch p.Policy {
		case ThresholdNone, ThresholdSoft, ThresholdHard:
		default:
			return engineerrors.NewCalibrationInvalidError(
				fmt.Sprintf("experience.%s.policy: unknown policy %q", domain, p.Policy))
		}
	}

	for id, s := range b.Schools {
		if s.Info.ID != "" && s.Info.ID != id {
			return engineerrors.NewCalibrationInvalidError(
				fmt.Sprintf("schools.%s: info.id %q does not match key", id, s.Info.ID))
		}
		for name, v := range map[string]float64{
			"interceptInterview": s.Params.InterceptInterview,
			"interceptAccept":    s.Params.InterceptAccept,
			"slopeInterview":     s.Params.SlopeInterview,
			"slopeAccept":        s.Params.SlopeAccept,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return engineerrors.NewCalibrationInvalidError(
					fmt.Sprintf("schools.%s.params.%s is not finite", id, name))
			}
		}
		if s.Params.SlopeInterview < 0 || s.Params.SlopeAccept < 0 {
			return engineerrors.NewCalibrationInvalidError(
				fmt.Sprintf("schools.%s: slopes must be non-negative", id))
		}
	}

	for i, c := range b.ReferenceCells {
		if c.Rate < 0 || c.Rate > 1 || c.Weight < 0 {
			return engineerrors.NewCalibrationInvalidError(
				fmt.Sprintf("referenceCells[%d]: rate must be a probability and weight non-negative", i))
		}
	}

	return nil
}

func validateTable(name string, t Table) error {
	if t.Step <= 0 {
		return engineerrors.NewCalibrationInvalidError(name + ".step must be positive")
	}
	if t.XMax <= t.XMin {
		return engineerrors.NewCalibrationInvalidError(name + ".xMax must exceed xMin")
	}
	want := int(math.Round((t.XMax-t.XMin)/t.Step)) + 1
	if len(t.Values) != want {
		return engineerrors.NewCalibrationInvalidError(
			fmt.Sprintf("%s: expected %d values for the given spacing, got %d", name, want, len(t.Values)))
	}
	for i := 1; i < len(t.Values); i++ {
		if t.Values[i] < t.Values[i-1] {
			return engineerrors.NewCalibrationInvalidError(
				fmt.Sprintf("%s: values must be non-decreasing (index %d)", name, i))
		}
	}
	return nil
}
