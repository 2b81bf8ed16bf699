// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineError_Error(t *testing.T) {
	err := NewCalibrationMissingError("umich-med")

	assert.Equal(t, "EngineError[CALIBRATION_MISSING]: No calibrated constants for institution", err.Error())
	assert.Contains(t, err.Details, "umich-med")
	assert.True(t, err.Recoverable)
	assert.False(t, err.Timestamp.IsZero())
}

func TestConstructors_CodesAndRecoverability(t *testing.T) {
	tests := []struct {
		name        string
		err         *EngineError
		code        ErrorCode
		recoverable bool
	}{
		{name: "calibration missing", err: NewCalibrationMissingError("x"), code: ErrCodeCalibrationMissing, recoverable: true},
		{name: "calibration invalid", err: NewCalibrationInvalidError("bad table"), code: ErrCodeCalibrationInvalid, recoverable: false},
		{name: "config invalid", err: NewConfigInvalidError("bad level"), code: ErrCodeConfigInvalid, recoverable: false},
		{name: "input out of domain", err: NewInputOutOfDomainError("gpa", 5, 0, 4), code: ErrCodeInputOutOfDomain, recoverable: true},
		{name: "degenerate statistic", err: NewDegenerateStatisticError("correlation", "no valid pairs"), code: ErrCodeDegenerateStatistic, recoverable: true},
		{name: "unknown category", err: NewUnknownCategoryError("martian"), code: ErrCodeUnknownCategory, recoverable: true},
		{name: "store unavailable", err: NewStoreUnavailableError(errors.New("conn refused")), code: ErrCodeStoreUnavailable, recoverable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.recoverable, tt.err.Recoverable)
		})
	}
}

func TestIsCode(t *testing.T) {
	err := NewConfigInvalidError("nope")

	assert.True(t, IsCode(err, ErrCodeConfigInvalid))
	assert.False(t, IsCode(err, ErrCodeCalibrationInvalid))
	assert.False(t, IsCode(nil, ErrCodeConfigInvalid))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeConfigInvalid))
}
