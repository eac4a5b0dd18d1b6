// Package scaffold orchestrates REST API project and auth generation.
//
// The orchestrators own no I/O: the console, the database schema and the
// compile steps are all constructor dependencies.
package scaffold

import (
	"context"

	"github.com/restgen/restgen/pkg/core/compiler"
)

// UI is the operator console.
type UI interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Success(format string, args ...any)
	// Alert shows a prominent non-fatal notice.
	Alert(message string)
	// Choose asks the operator to pick one of options and returns its index.
	Choose(prompt string, options []string) (int, error)
}

// Step is one compile step of a generation run.
type Step interface {
	Name() string
	Compile(ctx context.Context, params compiler.Params) (string, error)
}

// Schema answers the schema questions the orchestrators need.
type Schema interface {
	ListTableNames(ctx context.Context) ([]string, error)
	TablesExist(ctx context.Context, names ...string) (bool, error)
}

// Steps adapts compilers to steps.
func Steps(compilers []*compiler.Compiler) []Step {
	steps := make([]Step, len(compilers))
	for i, c := range compilers {
		steps[i] = c
	}
	return steps
}
