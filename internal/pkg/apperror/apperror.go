package apperror

// AppError pairs a user-facing message with the HTTP status code the API
// should answer with. Reservation and booking failures are declared as
// AppError values so handlers can return them without a mapping switch.
type AppError struct {
	Code    int    // HTTP status to respond with
	Message string // safe to show to the client
	Err     error  // underlying cause, kept out of responses
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError from a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a status code and message to an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
