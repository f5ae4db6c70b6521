package apperr

type Kind string

// AppError carries a safe public message next to the internal cause.
type AppError struct {
	Kind      Kind
	PublicMsg string
	Fields    map[string]string // per-field validation messages
	Err       error             // internal, logged only
}
