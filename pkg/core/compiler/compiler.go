// Package compiler turns stubs into project source files.
//
// There is a single Compiler type. What it generates is decided by its
// Variant: the stub to load, where the output goes, how files are named,
// whether the stub is expanded once per model and whether output overwrites,
// appends to, or is only returned.
package compiler

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	"github.com/restgen/restgen/pkg/core/naming"
	"github.com/restgen/restgen/pkg/core/schema"
	"github.com/restgen/restgen/pkg/core/stub"
	"github.com/restgen/restgen/pkg/errors"
)

// Parameter keys understood by every compiler.
const (
	ParamModelsKebab = "modelsInKebabNotation"
	ParamModelsCamel = "modelsInCamelCaseNotation"
	ParamTables      = "tables"
)

// Params maps parameter or placeholder names to values.
type Params map[string]string

// WriteMode selects what happens to compiled output.
type WriteMode int

const (
	// Overwrite writes the output file, replacing any existing one.
	Overwrite WriteMode = iota
	// Append appends to the output file unless its sentinel is present.
	Append
	// Return only returns the compiled text.
	Return
)

// Target names a destination directory.
type Target string

const (
	TargetModels          Target = "models"
	TargetTransformers    Target = "transformers"
	TargetControllers     Target = "controllers"
	TargetDefinitions     Target = "definitions"
	TargetRoutes          Target = "routes"
	TargetAuthControllers Target = "auth-controllers"
	TargetAuthDefinitions Target = "auth-definitions"
	TargetAuthRoutes      Target = "auth-routes"
)

// Paths maps targets to directories.
type Paths map[Target]string

// Variant describes one kind of generated artifact.
type Variant struct {
	Name     string // command-style name, e.g. "crud-models"
	Stub     string // stub name, e.g. "crud/model.stub"
	Target   Target
	FileName string // may contain placeholders, e.g. "{{modelName}}.php"
	PerModel bool   // expand the stub once per model
	Header   string // written once before per-model output sharing a file
	Mode     WriteMode
	Sentinel string // Append mode: skip when the file already contains it
}

// ColumnSource provides table columns for model attributes and definitions.
type ColumnSource interface {
	Columns(ctx context.Context, tableName string) ([]*schema.ColumnInfo, error)
}

// Options holds the collaborators shared by compilers.
type Options struct {
	Paths   Paths
	Globals Params // placeholders available to every stub, e.g. namespace
	Columns ColumnSource
	Loader  *stub.Loader
	Logger  *zap.Logger
}

// Compiler compiles one Variant.
type Compiler struct {
	variant Variant
	opts    Options
	logger  *zap.Logger
}

// New creates a compiler for variant.
func New(variant Variant, opts Options) *Compiler {
	if opts.Loader == nil {
		opts.Loader = stub.NewLoader("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		variant: variant,
		opts:    opts,
		logger:  logger.Named("compiler").With(zap.String("step", variant.Name)),
	}
}

// Name returns the variant name.
func (c *Compiler) Name() string {
	return c.variant.Name
}

// Variant returns the compiled variant.
func (c *Compiler) Variant() Variant {
	return c.variant
}

// output is the compiled content destined for one file.
type output struct {
	fileName string
	parts    []string
}

// Compile substitutes params into the stub, writes the result according to
// the variant's mode and returns the compiled text.
func (c *Compiler) Compile(ctx context.Context, params Params) (string, error) {
	v := c.variant
	dir := c.opts.Paths[v.Target]

	tmpl, err := c.opts.Loader.Template(v.Stub, dir, "")
	if err != nil {
		return "", err
	}

	var outputs []*output
	if v.PerModel {
		outputs, err = c.compileModels(ctx, tmpl, params)
		if err != nil {
			return "", err
		}
	} else {
		vars := c.vars(params)
		outputs = []*output{{
			fileName: stub.Substitute(v.FileName, vars),
			parts:    []string{tmpl.Compile(vars)},
		}}
	}

	compiled := make([]string, 0, len(outputs))
	for _, out := range outputs {
		content := strings.Join(out.parts, "\n")
		if v.PerModel && v.Header != "" {
			content = v.Header + content
		}
		if err := c.emit(tmpl, out.fileName, content); err != nil {
			return content, err
		}
		compiled = append(compiled, content)
	}

	return strings.Join(compiled, "\n"), nil
}

// compileModels expands the stub for each model. Outputs that resolve to the
// same file name are joined in model order.
func (c *Compiler) compileModels(ctx context.Context, tmpl *stub.Template, params Params) ([]*output, error) {
	models, err := modelsFromParams(params)
	if err != nil {
		return nil, err
	}

	tokens := make(map[string]bool)
	for _, token := range stub.Tokens(tmpl.Text) {
		tokens[token] = true
	}
	needColumns := tokens["fillable"] || tokens["swaggerProperties"]

	var outputs []*output
	byName := make(map[string]*output)
	for _, model := range models {
		vars := c.vars(params)
		for k, val := range modelVars(model) {
			vars[k] = val
		}

		if needColumns {
			columns, err := c.columns(ctx, model.Table)
			if err != nil {
				return nil, err
			}
			vars["fillable"] = Fillable(columns)
			vars["swaggerProperties"] = SwaggerProperties(columns)
		}

		fileName := stub.Substitute(c.variant.FileName, vars)
		out, ok := byName[fileName]
		if !ok {
			out = &output{fileName: fileName}
			byName[fileName] = out
			outputs = append(outputs, out)
		}
		out.parts = append(out.parts, tmpl.Compile(vars))
	}

	return outputs, nil
}

// vars merges the global placeholders with params.
func (c *Compiler) vars(params Params) Params {
	vars := make(Params, len(c.opts.Globals)+len(params))
	for k, v := range c.opts.Globals {
		vars[k] = v
	}
	for k, v := range params {
		vars[k] = v
	}
	return vars
}

func (c *Compiler) columns(ctx context.Context, table string) ([]*schema.ColumnInfo, error) {
	if c.opts.Columns == nil {
		return nil, nil
	}
	return c.opts.Columns.Columns(ctx, table)
}

// emit persists content according to the variant's write mode.
func (c *Compiler) emit(tmpl *stub.Template, fileName, content string) error {
	target := &stub.Template{
		Name:     tmpl.Name,
		Text:     tmpl.Text,
		Dir:      tmpl.Dir,
		FileName: fileName,
	}

	if c.variant.Mode == Return {
		c.logger.Debug("compiled without writing", zap.String("file", target.Path()))
		return nil
	}

	var (
		path string
		err  error
	)
	switch c.variant.Mode {
	case Append:
		path, err = target.Append(content, c.variant.Sentinel)
	default:
		path, err = target.Save(content)
	}
	if err != nil {
		return err
	}

	c.logger.Info("wrote file", zap.String("file", filepath.ToSlash(path)))
	return nil
}

// modelVars returns the per-model placeholders.
func modelVars(m naming.ModelSpec) Params {
	table := m.Table
	if table == "" {
		table = strings.ReplaceAll(naming.PluralKebab(m.Kebab), "-", "_")
	}
	return Params{
		"modelName":     m.Camel,
		"modelKebab":    m.Kebab,
		"modelSnake":    strcase.ToSnake(m.Camel),
		"modelVariable": strcase.ToLowerCamel(m.Camel),
		"modelPlural":   naming.PluralKebab(m.Kebab),
		"tableName":     table,
	}
}

// modelsFromParams reads the model lists from params. Either notation may be
// omitted and is then derived from the other; tables are optional.
func modelsFromParams(params Params) (naming.NotationSet, error) {
	var kebab, camel, tables []string
	if s := params[ParamModelsKebab]; s != "" {
		kebab = naming.SplitCSV(s)
	}
	if s := params[ParamModelsCamel]; s != "" {
		camel = naming.SplitCSV(s)
	}
	if s := params[ParamTables]; s != "" {
		tables = naming.SplitCSV(s)
	}

	switch {
	case kebab == nil && camel == nil:
		return nil, errors.NewInputError("no models given")
	case kebab == nil:
		kebab = make([]string, len(camel))
		for i, name := range camel {
			kebab[i] = strcase.ToKebab(name)
		}
	case camel == nil:
		camel = make([]string, len(kebab))
		for i, name := range kebab {
			camel[i] = naming.ToCamelCase(name)
		}
	}

	if len(kebab) != len(camel) {
		return nil, errors.NewInputError("%s and %s list different numbers of models", ParamModelsKebab, ParamModelsCamel)
	}
	if tables != nil && len(tables) != len(kebab) {
		return nil, errors.NewInputError(
			"table names quantity (%d) is not equal to model names quantity (%d)", len(tables), len(kebab))
	}

	set := make(naming.NotationSet, len(kebab))
	for i := range kebab {
		if kebab[i] == "" || camel[i] == "" || (tables != nil && tables[i] == "") {
			return nil, errors.NewInputError("empty model or table name at position %d", i+1)
		}
		set[i] = naming.ModelSpec{Kebab: kebab[i], Camel: camel[i]}
		if tables != nil {
			set[i].Table = tables[i]
		}
	}
	return set, nil
}
