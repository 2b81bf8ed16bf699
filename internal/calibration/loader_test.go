// internal/calibration/loader_test.go
package calibration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineerrors "medadmit-engine/internal/common/errors"
)

// minimalBundleJSON returns a structurally valid bundle document that tests
// mutate to exercise individual rejection paths.
func minimalBundleJSON() map[string]interface{} {
	return map[string]interface{}{
		"version":         "test",
		"globalIntercept": 1.1,
		"gpaTable": map[string]interface{}{
			"xMin": 2.0, "xMax": 4.0, "step": 1.0,
			"values": []float64{-1, 0, 1},
		},
		"mcatTable": map[string]interface{}{
			"xMin": 472.0, "xMax": 528.0, "step": 28.0,
			"values": []float64{-2, 0, 2},
		},
		"experience": map[string]interface{}{
			"clinical": map[string]interface{}{
				"tau": 400.0, "alpha": 0.3, "threshold": 100.0, "policy": "soft",
			},
		},
		"publications": map[string]interface{}{
			"firstAuthorValue": 0.15,
			"coAuthorValue":    0.08,
			"otherValue":       0.04,
			"diminishing":      0.75,
		},
		"demographics": map[string]interface{}{
			"categories":   map[string]interface{}{"white": 0.0},
			"ses":          map[string]interface{}{},
			"interactions": map[string]interface{}{},
		},
		"schools": map[string]interface{}{
			"test-school": map[string]interface{}{
				"info": map[string]interface{}{"id": "test-school", "state": "TX"},
				"params": map[string]interface{}{
					"interceptInterview": -2.0,
					"interceptAccept":    -0.5,
					"slopeInterview":     1.0,
					"slopeAccept":        0.5,
				},
			},
		},
	}
}

func marshalBundle(t *testing.T, doc map[string]interface{}) []byte {
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestLoadBytes_ValidBundle(t *testing.T) {
	b, err := LoadBytes(marshalBundle(t, minimalBundleJSON()))
	require.NoError(t, err)

	assert.Equal(t, "test", b.Version)
	assert.Equal(t, 1.1, b.GlobalIntercept)
	assert.Equal(t, -2.0, b.HardThresholdPenalty, "default applied when absent")

	params, ok := b.SchoolParams("test-school")
	require.True(t, ok)
	assert.Equal(t, 1.0, params.SlopeInterview)
}

func TestLoadBytes_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]interface{})
	}{
		{
			name: "missing required section",
			mutate: func(doc map[string]interface{}) {
				delete(doc, "schools")
			},
		},
		{
			name: "non-positive step",
			mutate: func(doc map[string]interface{}) {
				doc["gpaTable"].(map[string]interface{})["step"] = 0.0
			},
		},
		{
			name: "value count does not match spacing",
			mutate: func(doc map[string]interface{}) {
				doc["gpaTable"].(map[string]interface{})["values"] = []float64{-1, 1}
			},
		},
		{
			name: "decreasing table values",
			mutate: func(doc map[string]interface{}) {
				doc["mcatTable"].(map[string]interface{})["values"] = []float64{0, 2, 1}
			},
		},
		{
			name: "diminishing above one",
			mutate: func(doc map[string]interface{}) {
				doc["publications"].(map[string]interface{})["diminishing"] = 1.5
			},
		},
		{
			name: "negative slope",
			mutate: func(doc map[string]interface{}) {
				params := doc["schools"].(map[string]interface{})["test-school"].(map[string]interface{})["params"].(map[string]interface{})
				params["slopeInterview"] = -0.5
			},
		},
		{
			name: "unknown threshold policy",
			mutate: func(doc map[string]interface{}) {
				doc["experience"].(map[string]interface{})["clinical"].(map[string]interface{})["policy"] = "strict"
			},
		},
		{
			name: "school key and info id disagree",
			mutate: func(doc map[string]interface{}) {
				info := doc["schools"].(map[string]interface{})["test-school"].(map[string]interface{})["info"].(map[string]interface{})
				info["id"] = "other-school"
			},
		},
		{
			name: "reference cell rate above one",
			mutate: func(doc map[string]interface{}) {
				doc["referenceCells"] = []map[string]interface{}{
					{"gpa": 3.0, "mcat": 500.0, "rate": 1.5, "weight": 0.1},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalBundleJSON()
			tt.mutate(doc)

			_, err := LoadBytes(marshalBundle(t, doc))
			require.Error(t, err)
			assert.True(t, engineerrors.IsCode(err, engineerrors.ErrCodeCalibrationInvalid),
				"expected CALIBRATION_INVALID, got %v", err)
		})
	}
}

func TestLoadBytes_MalformedJSON(t *testing.T) {
	_, err := LoadBytes([]byte(`{"version": `))
	require.Error(t, err)
	assert.True(t, engineerrors.IsCode(err, engineerrors.ErrCodeCalibrationInvalid))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, marshalBundle(t, minimalBundleJSON()), 0o644))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test", b.Version)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, engineerrors.IsCode(err, engineerrors.ErrCodeCalibrationInvalid))
}
