// Package validation defines the field-keyed error map produced by request
// validation and the typed error used to carry it across layers.
package validation

// Errors maps a field name to the list of messages for every rule the field
// violated. All violations are collected before a response is produced;
// validation never short-circuits on the first failing field.
type Errors map[string][]string

// Add appends a message to the given field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Merge copies every entry of other into e.
func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		e[field] = append(e[field], messages...)
	}
}

// Empty reports whether no field has violations.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Error is returned by services when request validation fails.
// Handlers unwrap it with errors.As and render a 422 envelope.
type Error struct {
	Fields Errors
}

// NewError creates a validation Error from a field map.
func NewError(fields Errors) *Error {
	return &Error{Fields: fields}
}

// Single creates a validation Error with one message on one field.
func Single(field, message string) *Error {
	fields := Errors{}
	fields.Add(field, message)
	return &Error{Fields: fields}
}

func (e *Error) Error() string {
	return "validation failed"
}
