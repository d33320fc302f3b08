package domain

import "strings"

// FieldError is a single validation failure on one attribute.
type FieldError struct {
	Field   string `json:"field"`   // Attribute name, e.g. "amount"
	Message string `json:"message"` // Human-readable message, e.g. "must be greater than 0"
}

// Error returns the full message, e.g. "Amount must be greater than 0".
func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return strings.ToUpper(e.Field[:1]) + e.Field[1:] + " " + e.Message
}

// ValidationErrors collects every field-level failure of one record.
// It is returned as a single error so handlers can render the whole list.
type ValidationErrors []FieldError

// Error joins all messages into one string.
func (v ValidationErrors) Error() string {
	return strings.Join(v.Messages(), ", ")
}

// Messages returns the list of full messages for the API error body.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return msgs
}

// Add appends a failure for the given field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil returns the collected errors as an error, or nil when empty.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
