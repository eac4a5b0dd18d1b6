package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/restgen/restgen/internal/scaffold"
	"github.com/restgen/restgen/pkg/core/compiler"
	"github.com/restgen/restgen/pkg/core/stub"
)

// compilerOptions returns the options shared by the session's compilers.
func (s *session) compilerOptions() compiler.Options {
	return compiler.Options{
		Paths:   s.config.CompilerPaths(),
		Globals: s.config.Globals(),
		Columns: s.inspector,
		Loader:  stub.NewLoader(s.config.StubsDir),
		Logger:  s.logger,
	}
}

// steps builds one step per variant. In dry-run mode each step prints its
// output instead of writing it.
func (s *session) steps(dryRun bool, variants ...compiler.Variant) []scaffold.Step {
	if !dryRun {
		return scaffold.Steps(compiler.Chain(s.compilerOptions(), variants...))
	}

	compilers := compiler.Chain(s.compilerOptions(), compiler.Preview(variants...)...)

	steps := make([]scaffold.Step, len(compilers))
	for i, c := range compilers {
		steps[i] = &previewStep{Compiler: c, out: os.Stdout}
	}
	return steps
}

// previewStep prints what a compiler would write.
type previewStep struct {
	*compiler.Compiler
	out io.Writer
}

func (p *previewStep) Compile(ctx context.Context, params compiler.Params) (string, error) {
	text, err := p.Compiler.Compile(ctx, params)
	if err != nil {
		return text, err
	}
	fmt.Fprintf(p.out, "%s\n%s\n\n", color.New(color.FgCyan).Sprintf("--- %s ---", p.Name()), text)
	return text, nil
}
