package cli

import "fmt"

// ExitCodeError carries the exit status the process should end with.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError creates an ExitCodeError for code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}
