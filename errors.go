package typedquery

import (
	"fmt"
	"strings"
)

// ValidationError is reported by the strict read operations when stored values fail
// to parse. It carries enough context both for a human-readable diagnostic and for
// programmatic inspection.
type ValidationError struct {
	// Property is the queried key.
	Property string
	// Datatype is the name of the datatype that rejected the values.
	Datatype string
	// Values are the raw values the datatype has seen.
	Values []string
	// Reason is the datatype's own failure message.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"Failed to validate %s rule for property %q with values: %s. %s",
		e.Datatype, e.Property, strings.Join(e.Values, ", "), e.Reason,
	)
}
