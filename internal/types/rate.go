package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Rate is a monetary hourly rate. Django serializes DecimalFields as JSON
// strings, older deployments send bare numbers, and some records carry null,
// so decoding has to accept all three. Valid is false when the wire value was
// absent or not numeric.
type Rate struct {
	Value float64
	Valid bool
}

// NewRate returns a valid Rate with the given value.
func NewRate(v float64) Rate { return Rate{Value: v, Valid: true} }

// Or returns the rate value, or def when the rate is not valid.
func (r Rate) Or(def float64) float64 {
	if !r.Valid {
		return def
	}
	return r.Value
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*r = Rate{}
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Tolerate garbage rather than failing the whole payload.
		*r = Rate{}
		return nil
	}
	*r = Rate{Value: v, Valid: true}
	return nil
}

func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}
