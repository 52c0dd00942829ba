package qase

import (
	"fmt"
	"strings"
)

// StatusCode is the numeric status representation used by the API.
type StatusCode int

// Known status codes. Anything unrecognized normalizes to StatusInvalid.
const (
	StatusPassed  StatusCode = 1
	StatusSkipped StatusCode = 2
	StatusBlocked StatusCode = 3
	StatusInvalid StatusCode = 4
	StatusFailed  StatusCode = 5
)

var statusCodes = map[string]StatusCode{
	"passed":  StatusPassed,
	"skipped": StatusSkipped,
	"blocked": StatusBlocked,
	"failed":  StatusFailed,
}

// ParseStatus normalizes a status value of any JSON type to a StatusCode.
// Numeric values pass through; strings are matched case-insensitively.
func ParseStatus(value any) StatusCode {
	switch v := value.(type) {
	case int:
		return StatusCode(v)
	case float64:
		return StatusCode(int(v))
	case StatusCode:
		return v
	default:
		if code, ok := statusCodes[NormalizeStatus(fmt.Sprintf("%v", value))]; ok {
			return code
		}
		return StatusInvalid
	}
}

// NormalizeStatus returns the canonical lowercase form used in result
// payloads.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
