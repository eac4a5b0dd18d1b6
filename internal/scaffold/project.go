package scaffold

import (
	"context"

	"go.uber.org/zap"

	"github.com/restgen/restgen/pkg/core/compiler"
	"github.com/restgen/restgen/pkg/core/naming"
	"github.com/restgen/restgen/pkg/errors"
)

// Fallback choices offered when the command line input is unusable.
const (
	ChoiceConfigFile = "Take models and tables from the configuration file"
	ChoiceSchema     = "Use default convention and read the database schema"
)

// ProjectOptions configures a Project.
type ProjectOptions struct {
	Models      naming.ModelMap // configuration file mapping
	TablePrefix string
	Ignore      []string
	Interactive bool // offer the fallback choice instead of aborting
	OutputDir   string
}

// Report summarizes a generation run.
type Report struct {
	Source string
	Models naming.NotationSet
	Steps  []string // completed steps, in order
}

// Project generates the CRUD layer of a REST API project.
type Project struct {
	steps  []Step
	schema Schema
	ui     UI
	opts   ProjectOptions
	logger *zap.Logger
}

// NewProject creates a project orchestrator running steps in order.
func NewProject(steps []Step, schema Schema, ui UI, opts ProjectOptions, logger *zap.Logger) *Project {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Project{
		steps:  steps,
		schema: schema,
		ui:     ui,
		opts:   opts,
		logger: logger.Named("project"),
	}
}

// Run resolves the models from input, falling back to the operator's choice
// of source when input is invalid, and generates the project.
func (p *Project) Run(ctx context.Context, input ExplicitParams) (*Report, error) {
	var source ParamsSource = input
	models, err := source.resolve(ctx, p.schema)
	if err != nil {
		if !errors.HasCode(err, errors.ErrInputValidation) {
			return nil, err
		}
		p.ui.Warn("%s", messageOf(err))

		source, err = p.fallback()
		if err != nil {
			return nil, err
		}
		models, err = source.resolve(ctx, p.schema)
		if err != nil {
			return nil, err
		}
	}

	return p.generate(ctx, source, models)
}

// Generate generates the project from source without any fallback.
func (p *Project) Generate(ctx context.Context, source ParamsSource) (*Report, error) {
	models, err := source.resolve(ctx, p.schema)
	if err != nil {
		return nil, err
	}
	return p.generate(ctx, source, models)
}

func (p *Project) fallback() (ParamsSource, error) {
	if !p.opts.Interactive {
		return nil, errors.NewInputError("no usable models given and interaction is disabled").
			WithSuggestion("Pass --models and --tables, or run without --no-interaction")
	}

	choice, err := p.ui.Choose("Where should models and tables come from?", []string{ChoiceConfigFile, ChoiceSchema})
	if err != nil {
		return nil, errors.Wrap(err, "reading choice")
	}

	switch choice {
	case 0:
		return ConfigFileParams{Models: p.opts.Models}, nil
	default:
		return SchemaDerivedParams{Prefix: p.opts.TablePrefix, Ignore: p.opts.Ignore}, nil
	}
}

// generate runs every step in order. Files written by completed steps are
// kept when a later step fails.
func (p *Project) generate(ctx context.Context, source ParamsSource, models naming.NotationSet) (*Report, error) {
	report := &Report{Source: source.Describe(), Models: models}
	params := compiler.Params{
		compiler.ParamModelsKebab: models.KebabCSV(),
		compiler.ParamModelsCamel: models.CamelCSV(),
		compiler.ParamTables:      models.TablesCSV(),
	}

	p.logger.Info("generating project",
		zap.String("source", report.Source),
		zap.String("models", params[compiler.ParamModelsKebab]))

	for _, step := range p.steps {
		p.ui.Info("Running %s", step.Name())
		if _, err := step.Compile(ctx, params); err != nil {
			p.ui.Warn("Generation stopped at %s; files from earlier steps were kept", step.Name())
			return report, err
		}
		report.Steps = append(report.Steps, step.Name())
	}

	if p.opts.OutputDir != "" {
		p.ui.Success("REST API project generated in %s", p.opts.OutputDir)
	} else {
		p.ui.Success("REST API project generated")
	}
	return report, nil
}

// messageOf returns the operator-facing message of err.
func messageOf(err error) string {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
