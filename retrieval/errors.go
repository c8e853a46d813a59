package retrieval

import "fmt"

// Error codes for retrieval failures.
const (
	// ErrDependencyFailure means a required pre-stage (embedding or
	// permission lookup) failed and the request cannot proceed.
	ErrDependencyFailure = "DEPENDENCY_FAILURE"
	// ErrVectorSearchFailure means the vector search itself failed.
	ErrVectorSearchFailure = "VECTOR_SEARCH_FAILURE"
)

// Error is a structured retrieval error carrying the stage that failed.
type Error struct {
	Code    string
	Stage   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Stage, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewDependencyError wraps a failure in a required pre-stage.
func NewDependencyError(stage string, cause error) *Error {
	return &Error{
		Code:    ErrDependencyFailure,
		Stage:   stage,
		Message: "required dependency failed",
		Cause:   cause,
	}
}

// NewVectorSearchError wraps a vector search failure.
func NewVectorSearchError(cause error) *Error {
	return &Error{
		Code:    ErrVectorSearchFailure,
		Stage:   "vector_search",
		Message: "vector search failed",
		Cause:   cause,
	}
}
