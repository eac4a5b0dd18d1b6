// Package errors provides structured error types with helpful suggestions.
//
// Wrapping helpers are re-exported from github.com/cockroachdb/errors so
// callers get stack traces without importing two error packages.
package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Wrapping and inspection helpers.
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Is    = crdb.Is
	As    = crdb.As
)

// ErrorCode represents the category of error.
type ErrorCode string

const (
	// Input errors
	ErrInputValidation ErrorCode = "INPUT_VALIDATION"
	ErrConfig          ErrorCode = "CONFIG"

	// Schema errors
	ErrConnection          ErrorCode = "CONNECTION"
	ErrMissingPrerequisite ErrorCode = "MISSING_PREREQUISITE"

	// Generation errors
	ErrStubNotFound    ErrorCode = "STUB_NOT_FOUND"
	ErrDuplicateOutput ErrorCode = "DUPLICATE_OUTPUT"
	ErrWriteFailed     ErrorCode = "WRITE_FAILED"
)

var (
	headerColor     = color.New(color.Bold, color.FgRed)
	warnHeaderColor = color.New(color.Bold, color.FgYellow)
	suggestColor    = color.New(color.FgCyan)
	causeColor      = color.New(color.FgHiBlack)
)

// Error is a structured error with an optional cause and suggestion.
type Error struct {
	Code       ErrorCode
	Message    string
	Suggestion string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Warning reports whether the error is informational: the operation was
// skipped but nothing failed.
func (e *Error) Warning() bool {
	return e.Code == ErrDuplicateOutput || e.Code == ErrMissingPrerequisite
}

// Print outputs the error in a user-friendly colored format.
func (e *Error) Print() string {
	var sb strings.Builder

	if e.Warning() {
		sb.WriteString(warnHeaderColor.Sprint("Warning:"))
	} else {
		sb.WriteString(headerColor.Sprint("Error:"))
	}
	sb.WriteString(" " + e.Message + "\n")

	if e.Cause != nil {
		sb.WriteString("\n  " + causeColor.Sprintf("%v", e.Cause) + "\n")
	}

	if e.Suggestion != "" {
		sb.WriteString("\n" + suggestColor.Sprint("Suggestion:") + " " + e.Suggestion + "\n")
	}

	return sb.String()
}

// WithSuggestion adds a suggestion to the error.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// NewInputError creates an input validation error.
func NewInputError(format string, args ...any) *Error {
	return &Error{
		Code:       ErrInputValidation,
		Message:    fmt.Sprintf(format, args...),
		Suggestion: Suggestions[ErrInputValidation],
	}
}

// NewConnectionError creates a schema connection error.
func NewConnectionError(dialect string, cause error) *Error {
	return &Error{
		Code:       ErrConnection,
		Message:    fmt.Sprintf("could not connect to %s database", dialect),
		Suggestion: Suggestions[ErrConnection],
		Cause:      cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *Error {
	return &Error{
		Code:    ErrConfig,
		Message: message,
		Cause:   cause,
	}
}

// NewDuplicateOutputError reports generated content already present in path.
func NewDuplicateOutputError(path, marker string) *Error {
	return &Error{
		Code:    ErrDuplicateOutput,
		Message: fmt.Sprintf("%s already contains %q", path, marker),
	}
}

// NewMissingPrerequisiteError reports missing tables required by a generator.
func NewMissingPrerequisiteError(tables []string) *Error {
	return &Error{
		Code:       ErrMissingPrerequisite,
		Message:    fmt.Sprintf("required tables are missing: %s", strings.Join(tables, ", ")),
		Suggestion: Suggestions[ErrMissingPrerequisite],
	}
}

// NewStubError reports a stub that could not be loaded.
func NewStubError(name string, cause error) *Error {
	return &Error{
		Code:       ErrStubNotFound,
		Message:    fmt.Sprintf("stub %s not found", name),
		Suggestion: Suggestions[ErrStubNotFound],
		Cause:      cause,
	}
}

// NewWriteError reports a failed write of generated output.
func NewWriteError(path string, cause error) *Error {
	return &Error{
		Code:    ErrWriteFailed,
		Message: fmt.Sprintf("writing %s", path),
		Cause:   cause,
	}
}

// HasCode reports whether any error in err's chain is an *Error with code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if !As(err, &e) {
		return false
	}
	return e.Code == code
}

// Suggestions provides common suggestion messages.
var Suggestions = map[ErrorCode]string{
	ErrInputValidation:     "Pass --models and --tables as CSV lists of equal length, e.g. --models=user,user-role --tables=users,user_roles",
	ErrConnection:          "Check database.dialect and database.url in restgen.yaml",
	ErrMissingPrerequisite: "Migrate the default users and password_resets tables first",
	ErrStubNotFound:        "Check stubs_dir in restgen.yaml or remove it to use the built-in stubs",
}

// SuggestSimilar finds similar strings using Levenshtein distance.
func SuggestSimilar(input string, options []string) string {
	input = strings.ToLower(input)
	var best string
	bestDist := len(input) + 1

	for _, opt := range options {
		dist := levenshtein(input, strings.ToLower(opt))
		if dist < bestDist && dist <= 3 { // Only suggest if close enough
			bestDist = dist
			best = opt
		}
	}

	if best != "" {
		return fmt.Sprintf("Did you mean '%s'?", best)
	}
	return ""
}

// levenshtein calculates the edit distance between two strings.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
