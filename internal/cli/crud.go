package cli

import (
	"context"
	"fmt"

	"github.com/restgen/restgen/pkg/core/compiler"
	"github.com/restgen/restgen/pkg/errors"
)

// MakeStep runs a single CRUD compiler, e.g. "crud-models".
func MakeStep(ctx context.Context, opts GlobalOptions, name, models, tables string, dryRun bool) error {
	variant, ok := compiler.VariantByName(name)
	if !ok {
		return errors.Newf("unknown step %q", name)
	}
	if models == "" {
		return errors.NewInputError("model names are missing").
			WithSuggestion(fmt.Sprintf("Pass --models, e.g. restgen make-%s --models=user,user-role", name))
	}

	s, err := openSession(ctx, opts, false)
	if err != nil {
		return err
	}
	defer s.Close()

	step := s.steps(dryRun, variant)[0]
	s.ui.Info("Running %s", step.Name())
	if _, err := step.Compile(ctx, compiler.Params{
		compiler.ParamModelsKebab: models,
		compiler.ParamTables:      tables,
	}); err != nil {
		return err
	}

	s.ui.Success("%s done", step.Name())
	return nil
}
