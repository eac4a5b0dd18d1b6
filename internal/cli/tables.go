package cli

import (
	"context"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/restgen/restgen/pkg/core/naming"
)

// Tables lists the schema tables with the models derived from them.
func Tables(ctx context.Context, opts GlobalOptions) error {
	s, err := openSession(ctx, opts, false)
	if err != nil {
		return err
	}
	defer s.Close()

	tables, err := s.inspector.ListTableNames(ctx)
	if err != nil {
		return err
	}

	return printTables(os.Stdout, tables, s.config)
}

func printTables(w io.Writer, tables []string, config *Config) error {
	ignored := make(map[string]bool, len(config.IgnoreTables))
	for _, t := range config.IgnoreTables {
		ignored[t] = true
	}

	data := pterm.TableData{{"TABLE", "MODEL", "CLASS"}}
	for _, table := range tables {
		if ignored[table] {
			data = append(data, []string{table, "(ignored)", ""})
			continue
		}
		model := naming.ModelFromTable(table, config.TablePrefix)
		data = append(data, []string{table, model, naming.ToCamelCase(model)})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		WithWriter(w).
		Render()
}
