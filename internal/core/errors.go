package core

// ErrorKind classifies why a command could not be carried out.
type ErrorKind string

const (
	KindMalformedCommand   ErrorKind = "malformed_command"
	KindMissingField       ErrorKind = "missing_field"
	KindInvalidFieldValue  ErrorKind = "invalid_field_value"
	KindIndexOutOfRange    ErrorKind = "index_out_of_range"
	KindPersistenceFailure ErrorKind = "persistence_failure"
)

// CommandError is the error returned by validators, registries and stores.
// Message is always safe to show to the user as-is.
type CommandError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string { return e.Message }

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *CommandError) Unwrap() error { return e.Err }

// Is reports whether target is a CommandError of the same kind, so that
// errors.Is(err, ErrMissingField) matches any missing-field error.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithMessage creates a new CommandError of the sentinel's kind with a custom message.
func WithMessage(sentinel *CommandError, message string) *CommandError {
	return &CommandError{Kind: sentinel.Kind, Message: message}
}

// Wrap creates a new CommandError of the sentinel's kind wrapping err.
func Wrap(sentinel *CommandError, err error) *CommandError {
	msg := sentinel.Message
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &CommandError{Kind: sentinel.Kind, Message: msg, Err: err}
}

var (
	ErrMalformedCommand   = &CommandError{Kind: KindMalformedCommand, Message: "Unrecognized command"}
	ErrMissingField       = &CommandError{Kind: KindMissingField, Message: "Missing field"}
	ErrInvalidFieldValue  = &CommandError{Kind: KindInvalidFieldValue, Message: "Invalid field value"}
	ErrIndexOutOfRange    = &CommandError{Kind: KindIndexOutOfRange, Message: "Index out of range"}
	ErrPersistenceFailure = &CommandError{Kind: KindPersistenceFailure, Message: "Error updating file"}
)
