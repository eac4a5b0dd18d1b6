// Package naming converts identifiers between the notations used by the
// generated project: kebab-case model names, CamelCase class names and
// plural snake_case table names.
//
// Singularization and pluralization use github.com/jinzhu/inflection, the
// same English rule table GORM uses to map structs to tables.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
)

// ToCamelCase converts a kebab-case name to CamelCase.
// Only the first rune of every segment is changed; empty segments are skipped.
//
//	ToCamelCase("user-role") // "UserRole"
func ToCamelCase(kebab string) string {
	var sb strings.Builder
	for _, part := range strings.Split(kebab, "-") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(part[size:])
	}
	return sb.String()
}

// SingularizeKebab converts a kebab-case or snake_case name to singular
// kebab-case, singularizing every word on its own.
//
// The delimiter is "-" when the input contains one, otherwise "_". Input
// mixing both keeps the other delimiter inside a word.
//
//	SingularizeKebab("user_roles") // "user-role"
func SingularizeKebab(raw string) string {
	delimiter := "_"
	if strings.Contains(raw, "-") {
		delimiter = "-"
	}

	parts := strings.Split(raw, delimiter)
	for i, part := range parts {
		parts[i] = inflection.Singular(part)
	}

	result := strings.Join(parts, "-")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		result = strings.TrimSuffix(result, "-")
	}
	return result
}

// StripPrefix removes prefix from the start of tableName. Names without the
// prefix are returned unchanged.
func StripPrefix(tableName, prefix string) string {
	return strings.TrimPrefix(tableName, prefix)
}

// ModelFromTable derives the kebab-case model name for a table, stripping the
// configured table prefix first.
//
//	ModelFromTable("api_user_roles", "api_") // "user-role"
func ModelFromTable(tableName, prefix string) string {
	return SingularizeKebab(StripPrefix(tableName, prefix))
}

// PluralKebab pluralizes the last word of a kebab-case name.
//
//	PluralKebab("user-category") // "user-categories"
func PluralKebab(kebab string) string {
	i := strings.LastIndex(kebab, "-")
	return kebab[:i+1] + inflection.Plural(kebab[i+1:])
}

// SplitCSV splits a comma separated list, trimming whitespace around items.
// An empty string yields a single empty item.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
