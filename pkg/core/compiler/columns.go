package compiler

import (
	"fmt"
	"strings"

	"github.com/restgen/restgen/pkg/core/schema"
)

// timestampColumns are maintained by the framework and never mass assigned.
var timestampColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"deleted_at": true,
}

// Fillable renders the mass-assignable attribute list of a model, e.g.
// 'name', 'email'. Primary keys and timestamp columns are excluded.
func Fillable(columns []*schema.ColumnInfo) string {
	var names []string
	for _, col := range columns {
		if col.IsPrimaryKey || timestampColumns[col.Name] {
			continue
		}
		names = append(names, "'"+col.Name+"'")
	}
	return strings.Join(names, ", ")
}

// SwaggerProperties renders the swagger definition body for columns. The
// result continues an annotation argument list, so it starts with a comma
// and is empty when there are no columns.
func SwaggerProperties(columns []*schema.ColumnInfo) string {
	if len(columns) == 0 {
		return ""
	}

	var required []string
	for _, col := range columns {
		if !col.Nullable && !col.IsPrimaryKey && !col.AutoInc && col.Default == "" && !timestampColumns[col.Name] {
			required = append(required, `"`+col.Name+`"`)
		}
	}

	var sb strings.Builder
	if len(required) > 0 {
		fmt.Fprintf(&sb, ",\n *     required={%s}", strings.Join(required, ", "))
	}
	for _, col := range columns {
		typ, format := SwaggerType(col.Type)
		fmt.Fprintf(&sb, ",\n *     @SWG\\Property(property=\"%s\", type=\"%s\"", col.Name, typ)
		if format != "" {
			fmt.Fprintf(&sb, ", format=\"%s\"", format)
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// SwaggerType maps a SQL column type to a swagger type and format.
func SwaggerType(sqlType string) (typ, format string) {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if t == "tinyint(1)" {
		return "boolean", ""
	}
	base := t
	if i := strings.IndexAny(base, "( "); i >= 0 {
		base = base[:i]
	}

	switch base {
	case "bool", "boolean":
		return "boolean", ""
	case "int", "integer", "tinyint", "smallint", "mediumint", "bigint",
		"int2", "int4", "int8", "serial", "smallserial", "bigserial":
		return "integer", ""
	case "float", "float4", "float8", "double", "real", "decimal", "numeric":
		return "number", ""
	case "date":
		return "string", "date"
	case "datetime", "timestamp", "timestamptz":
		return "string", "date-time"
	case "json", "jsonb":
		return "object", ""
	default:
		return "string", ""
	}
}
