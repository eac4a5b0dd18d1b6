package cli

import (
	"context"

	"github.com/restgen/restgen/internal/scaffold"
	"github.com/restgen/restgen/pkg/core/compiler"
)

// MakeAuth generates the authentication controllers, swagger definitions
// and routes.
func MakeAuth(ctx context.Context, opts GlobalOptions, dryRun bool) error {
	s, err := openSession(ctx, opts, false)
	if err != nil {
		return err
	}
	defer s.Close()

	auth := scaffold.NewAuth(s.inspector, s.ui, scaffold.AuthOptions{
		UsersTable:          s.config.Auth.UsersTable,
		PasswordResetsTable: s.config.Auth.PasswordResetsTable,
		Controllers:         s.steps(dryRun, compiler.AuthControllerVariants...),
		Definitions:         s.steps(dryRun, compiler.AuthDefinitionVariants...),
		Routes:              s.steps(dryRun, compiler.AuthRoutesVariant)[0],
	}, s.logger)

	return auth.Run(ctx)
}
