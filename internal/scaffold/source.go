package scaffold

import (
	"context"

	"github.com/restgen/restgen/pkg/core/naming"
	"github.com/restgen/restgen/pkg/errors"
)

// ParamsSource is where the model list of a run comes from. It is one of
// ExplicitParams, ConfigFileParams or SchemaDerivedParams.
type ParamsSource interface {
	// Describe names the source for messages.
	Describe() string
	resolve(ctx context.Context, schema Schema) (naming.NotationSet, error)
}

// ExplicitParams are the CSV lists given on the command line.
type ExplicitParams struct {
	Models string
	Tables string
}

// ConfigFileParams is the ordered models mapping of the configuration file.
type ConfigFileParams struct {
	Models naming.ModelMap
}

// SchemaDerivedParams derives one model per table of the live schema.
type SchemaDerivedParams struct {
	Prefix string   // stripped from table names before singularizing
	Ignore []string // tables never turned into models
}

func (ExplicitParams) Describe() string      { return "command line" }
func (ConfigFileParams) Describe() string    { return "configuration file" }
func (SchemaDerivedParams) Describe() string { return "database schema" }

func (p ExplicitParams) resolve(context.Context, Schema) (naming.NotationSet, error) {
	return naming.NewNotationSet(naming.SplitCSV(p.Models), naming.SplitCSV(p.Tables))
}

func (p ConfigFileParams) resolve(context.Context, Schema) (naming.NotationSet, error) {
	if len(p.Models) == 0 {
		return nil, errors.NewInputError("the configuration file defines no models").
			WithSuggestion("Add a models mapping to restgen.yaml, e.g. models: {user: users}")
	}
	return naming.NewNotationSet(p.Models.Models(), p.Models.Tables())
}

func (p SchemaDerivedParams) resolve(ctx context.Context, schema Schema) (naming.NotationSet, error) {
	tables, err := schema.ListTableNames(ctx)
	if err != nil {
		return nil, err
	}

	ignored := make(map[string]bool, len(p.Ignore))
	for _, t := range p.Ignore {
		ignored[t] = true
	}

	var models, kept []string
	for _, t := range tables {
		if ignored[t] {
			continue
		}
		models = append(models, naming.ModelFromTable(t, p.Prefix))
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return nil, errors.NewInputError("the database schema has no tables to generate models from")
	}
	return naming.NewNotationSet(models, kept)
}
