package cli

import (
	"context"

	"github.com/restgen/restgen/internal/scaffold"
	"github.com/restgen/restgen/pkg/core/compiler"
)

// ProjectFlags are the make-rest-api-project flags.
type ProjectFlags struct {
	Models        string // kebab-case CSV
	Tables        string // CSV, same length as Models
	DryRun        bool
	NoInteraction bool
}

// MakeProject generates models, transformers, controllers, swagger
// definitions and routes for a REST API project.
func MakeProject(ctx context.Context, opts GlobalOptions, flags ProjectFlags) error {
	s, err := openSession(ctx, opts, !flags.NoInteraction)
	if err != nil {
		return err
	}
	defer s.Close()

	project := s.project(flags.DryRun, !flags.NoInteraction)
	report, err := project.Run(ctx, scaffold.ExplicitParams{Models: flags.Models, Tables: flags.Tables})
	if err != nil {
		return err
	}

	s.ui.Info("Models %s taken from the %s", report.Models.CamelCSV(), report.Source)
	return nil
}

func (s *session) project(dryRun, interactive bool) *scaffold.Project {
	return scaffold.NewProject(
		s.steps(dryRun, compiler.CRUDVariants()...),
		s.inspector,
		s.ui,
		scaffold.ProjectOptions{
			Models:      s.config.Models,
			TablePrefix: s.config.TablePrefix,
			Ignore:      s.config.IgnoreTables,
			Interactive: interactive,
			OutputDir:   s.config.Paths.Output,
		},
		s.logger,
	)
}
