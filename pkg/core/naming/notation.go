package naming

import (
	"strings"

	"github.com/restgen/restgen/pkg/errors"
)

// ModelSpec holds one model in every notation the compilers need.
type ModelSpec struct {
	Kebab string // user-role
	Camel string // UserRole
	Table string // user_roles
}

// NotationSet is the ordered list of models for one generation run.
type NotationSet []ModelSpec

// NewNotationSet pairs kebab-case model names with table names positionally.
// Both lists must be non-empty and of equal length.
func NewNotationSet(models, tables []string) (NotationSet, error) {
	if len(models) == 0 || models[0] == "" {
		return nil, errors.NewInputError("model names are missing").
			WithSuggestion("Please specify model names in kebab notation")
	}
	if len(tables) == 0 || tables[0] == "" {
		return nil, errors.NewInputError("table names are missing").
			WithSuggestion("Please specify table names")
	}
	if len(models) != len(tables) {
		return nil, errors.NewInputError(
			"table names quantity (%d) is not equal to model names quantity (%d)",
			len(tables), len(models))
	}

	set := make(NotationSet, len(models))
	for i, model := range models {
		if model == "" || tables[i] == "" {
			return nil, errors.NewInputError("empty model or table name at position %d", i+1)
		}
		set[i] = ModelSpec{
			Kebab: model,
			Camel: ToCamelCase(model),
			Table: tables[i],
		}
	}
	return set, nil
}

// KebabCSV returns the models in kebab notation as CSV.
func (n NotationSet) KebabCSV() string {
	return n.join(func(m ModelSpec) string { return m.Kebab })
}

// CamelCSV returns the models in CamelCase notation as CSV.
func (n NotationSet) CamelCSV() string {
	return n.join(func(m ModelSpec) string { return m.Camel })
}

// TablesCSV returns the table names as CSV.
func (n NotationSet) TablesCSV() string {
	return n.join(func(m ModelSpec) string { return m.Table })
}

func (n NotationSet) join(field func(ModelSpec) string) string {
	values := make([]string, len(n))
	for i, m := range n {
		values[i] = field(m)
	}
	return strings.Join(values, ",")
}
