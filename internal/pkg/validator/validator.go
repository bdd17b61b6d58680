package validator

// Validator validates request and domain structs.
type Validator interface {
	// Validate returns an error describing the first set of rule
	// violations, or nil when the value is valid.
	Validate(data any) error
}
