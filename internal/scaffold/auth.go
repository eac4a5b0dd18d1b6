package scaffold

import (
	"context"

	"go.uber.org/zap"

	"github.com/restgen/restgen/pkg/errors"
)

// AuthOptions configures an Auth orchestrator.
type AuthOptions struct {
	UsersTable          string
	PasswordResetsTable string
	Controllers         []Step
	Definitions         []Step
	Routes              Step
}

// Auth generates authentication controllers, definitions and routes.
type Auth struct {
	schema Schema
	ui     UI
	opts   AuthOptions
	logger *zap.Logger
}

// NewAuth creates an auth orchestrator.
func NewAuth(schema Schema, ui UI, opts AuthOptions, logger *zap.Logger) *Auth {
	if opts.UsersTable == "" {
		opts.UsersTable = "users"
	}
	if opts.PasswordResetsTable == "" {
		opts.PasswordResetsTable = "password_resets"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		schema: schema,
		ui:     ui,
		opts:   opts,
		logger: logger.Named("auth"),
	}
}

// Run generates the auth layer when the users and password resets tables
// exist. Missing tables and already present routes are reported to the
// operator and are not errors.
func (a *Auth) Run(ctx context.Context) error {
	required := []string{a.opts.UsersTable, a.opts.PasswordResetsTable}
	ok, err := a.schema.TablesExist(ctx, required...)
	if err != nil {
		return err
	}
	if !ok {
		a.logger.Info("auth tables missing", zap.Strings("tables", required))
		a.ui.Alert(errors.NewMissingPrerequisiteError(required).Message)
		return nil
	}

	steps := append(append([]Step{}, a.opts.Controllers...), a.opts.Definitions...)
	for _, step := range steps {
		a.ui.Info("Running %s", step.Name())
		if _, err := step.Compile(ctx, nil); err != nil {
			return err
		}
	}

	if a.opts.Routes != nil {
		a.ui.Info("Running %s", a.opts.Routes.Name())
		if _, err := a.opts.Routes.Compile(ctx, nil); err != nil {
			if !errors.HasCode(err, errors.ErrDuplicateOutput) {
				return err
			}
			a.ui.Alert(messageOf(err))
		}
	}

	a.ui.Success("Auth controllers, definitions and routes generated")
	return nil
}
