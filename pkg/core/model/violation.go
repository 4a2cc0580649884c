package model

import "strings"

// Violation reports a single field-level constraint which is not
// satisfied by a to-be-validated value. The Field member names the
// violating field using its API layer (serialized) name.
type Violation struct {
	Field   string // serialized field name, such as publicationYear
	Message string // human readable description of the violation
}

// Violations aggregates zero or more field-level violations. It
// implements the error interface, so an entire validation result may
// be wrapped and returned as a single error instance.
type Violations []Violation

// Error joins all violations as a semicolon separated string.
func (vs Violations) Error() string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Field + ": " + v.Message
	}
	return strings.Join(msgs, "; ")
}

func (vs *Violations) add(field, message string) {
	*vs = append(*vs, Violation{Field: field, Message: message})
}
