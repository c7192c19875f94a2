package errors

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryValidation covers malformed module definition tables.
	CategoryValidation ErrorCategory = "validation"
	// CategorySchema covers plugin manifests whose structure cannot be upserted.
	CategorySchema   ErrorCategory = "schema"
	CategoryNotFound ErrorCategory = "not_found"

	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryConfig     ErrorCategory = "config"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorContext holds structured key/value details attached to an error.
type ErrorContext map[string]any

// Set returns a copy of the context with key set to value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	out := make(ErrorContext, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}
