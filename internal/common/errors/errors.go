// Package errors provides the engine's structured error taxonomy.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCalibrationMissing  ErrorCode = "CALIBRATION_MISSING"
	ErrCodeCalibrationInvalid  ErrorCode = "CALIBRATION_INVALID"
	ErrCodeConfigInvalid       ErrorCode = "CONFIG_INVALID"
	ErrCodeInputOutOfDomain    ErrorCode = "INPUT_OUT_OF_DOMAIN"
	ErrCodeDegenerateStatistic ErrorCode = "DEGENERATE_STATISTIC"
	ErrCodeUnknownCategory     ErrorCode = "UNKNOWN_CATEGORY"
	ErrCodeStoreUnavailable    ErrorCode = "STORE_UNAVAILABLE"
)

// EngineError is a structured application error. Recoverable errors are
// handled in place with a documented default and only logged; the
// non-recoverable ones surface at the calibration-loading boundary.
type EngineError struct {
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Recoverable bool                   `json:"recoverable"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("EngineError[%s]: %s", e.Code, e.Message)
}

// NewCalibrationMissingError signals an institution absent from the parameter
// table. Recoverable: the entity gets an absent result, never the batch.
func NewCalibrationMissingError(schoolID string) *EngineError {
	return &EngineError{
		Code:        ErrCodeCalibrationMissing,
		Message:     "No calibrated constants for institution",
		Details:     fmt.Sprintf("schoolId: %s", schoolID),
		Recoverable: true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewCalibrationInvalidError rejects a malformed calibration bundle at load
// time.
func NewCalibrationInvalidError(details string) *EngineError {
	return &EngineError{
		Code:        ErrCodeCalibrationInvalid,
		Message:     "Calibration bundle failed validation",
		Details:     details,
		Recoverable: false,
		Timestamp:   time.Now().UTC(),
	}
}

// NewConfigInvalidError reports an unusable application configuration.
func NewConfigInvalidError(details string) *EngineError {
	return &EngineError{
		Code:        ErrCodeConfigInvalid,
		Message:     "Invalid application configuration",
		Details:     details,
		Recoverable: false,
		Timestamp:   time.Now().UTC(),
	}
}

// NewInputOutOfDomainError records a clamped academic scalar. The clamped
// value is always used; this error is informational.
func NewInputOutOfDomainError(field string, value, lo, hi float64) *EngineError {
	return &EngineError{
		Code:        ErrCodeInputOutOfDomain,
		Message:     "Numeric input outside documented domain, clamped",
		Details:     fmt.Sprintf("%s: %v not in [%v, %v]", field, value, lo, hi),
		Recoverable: true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewDegenerateStatisticError records a statistic that fell back to its
// defined default (zero correlation, zero-width interval).
func NewDegenerateStatisticError(statistic, details string) *EngineError {
	return &EngineError{
		Code:        ErrCodeDegenerateStatistic,
		Message:     fmt.Sprintf("Degenerate %s, using fallback", statistic),
		Details:     details,
		Recoverable: true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewUnknownCategoryError records an unrecognized demographic key that
// resolved to a zero effect.
func NewUnknownCategoryError(category string) *EngineError {
	return &EngineError{
		Code:        ErrCodeUnknownCategory,
		Message:     "Unknown demographic category, zero effect applied",
		Details:     fmt.Sprintf("category: %s", category),
		Recoverable: true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewStoreUnavailableError wraps a failure talking to an external parameter
// store.
func NewStoreUnavailableError(err error) *EngineError {
	return &EngineError{
		Code:        ErrCodeStoreUnavailable,
		Message:     "Parameter store unavailable",
		Details:     err.Error(),
		Recoverable: false,
		Timestamp:   time.Now().UTC(),
	}
}

// IsCode reports whether err is an EngineError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*EngineError)
	return ok && e.Code == code
}
