package transport

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexibleInt decodes a JSON number or numeric string. Values that are
// neither decode as absent instead of failing the request, so an unparseable
// urgency level lands in the lowest bucket.
type FlexibleInt struct {
	Value *int
}

func (f FlexibleInt) IsZero() bool {
	return f.Value == nil
}

// Ptr returns the decoded value or nil when absent.
func (f FlexibleInt) Ptr() *int {
	return f.Value
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	f.Value = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	var raw string
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(trimmed)
	}

	if v, ok := parseLeadingNumber(raw); ok {
		f.Value = &v
	}
	return nil
}

func (f FlexibleInt) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*f.Value)), nil
}

// parseLeadingNumber accepts integers and decimals; decimals truncate toward zero.
func parseLeadingNumber(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(raw); err == nil {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return v, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}
