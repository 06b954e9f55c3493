package types

import (
	"fmt"
	"strings"
)

// ------------------------------
// Shared Validation
// ------------------------------

// ValidateIDPresent rejects non-positive record IDs before a request is built.
func ValidateIDPresent(id int64, name string) error {
	if id <= 0 {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// ValidateNonEmpty rejects blank required string fields.
func ValidateNonEmpty(v, name string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
