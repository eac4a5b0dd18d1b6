// Package stub loads stub templates and fills their {{token}} placeholders.
//
// Built-in stubs are embedded in the binary. A Loader can be pointed at an
// override directory so a project can customize individual stubs; any stub
// missing there falls back to the embedded copy.
package stub

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/restgen/restgen/pkg/errors"
)

//go:embed stubs
var builtin embed.FS

// placeholder matches {{token}} with optional inner whitespace.
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z][A-Za-z0-9_]*)\s*\}\}`)

// Substitute replaces every placeholder whose token is a key of params.
// Unknown placeholders are left verbatim.
func Substitute(text string, params map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		token := placeholder.FindStringSubmatch(match)[1]
		if value, ok := params[token]; ok {
			return value
		}
		return match
	})
}

// Tokens returns the distinct placeholder tokens in text, in order of first
// appearance.
func Tokens(text string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			tokens = append(tokens, m[1])
		}
	}
	return tokens
}

// Loader reads stub sources.
type Loader struct {
	overrides fs.FS
}

// NewLoader creates a loader. When dir is non-empty, stubs found there take
// precedence over the built-in ones.
func NewLoader(dir string) *Loader {
	l := &Loader{}
	if dir != "" {
		l.overrides = os.DirFS(dir)
	}
	return l
}

// Load returns the source text of the named stub, e.g. "crud/model.stub".
func (l *Loader) Load(name string) (string, error) {
	if l.overrides != nil {
		data, err := fs.ReadFile(l.overrides, name)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", errors.NewStubError(name, err)
		}
	}

	data, err := builtin.ReadFile("stubs/" + name)
	if err != nil {
		return "", errors.NewStubError(name, err)
	}
	return string(data), nil
}

// Template is a loaded stub bound to its destination.
type Template struct {
	Name     string
	Text     string
	Dir      string
	FileName string
}

// Template loads the named stub and binds it to dir/fileName.
func (l *Loader) Template(name, dir, fileName string) (*Template, error) {
	text, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	return &Template{
		Name:     name,
		Text:     text,
		Dir:      dir,
		FileName: fileName,
	}, nil
}

// Compile returns the stub text with params substituted.
func (t *Template) Compile(params map[string]string) string {
	return Substitute(t.Text, params)
}

// Path returns the destination file path.
func (t *Template) Path() string {
	return filepath.Join(t.Dir, t.FileName)
}

// Save writes content to the destination, creating the directory if needed
// and overwriting any existing file.
func (t *Template) Save(content string) (string, error) {
	path := t.Path()
	if err := os.MkdirAll(t.Dir, 0755); err != nil {
		return "", errors.NewWriteError(t.Dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.NewWriteError(path, err)
	}
	return path, nil
}

// Append appends content to the destination unless the file already
// contains marker, in which case nothing is written and a DUPLICATE_OUTPUT
// error is returned.
func (t *Template) Append(content, marker string) (string, error) {
	path := t.Path()
	if err := os.MkdirAll(t.Dir, 0755); err != nil {
		return "", errors.NewWriteError(t.Dir, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return "", errors.NewWriteError(path, err)
	}
	defer f.Close()

	// The marker check and the write happen under one exclusive lock so
	// two concurrent runs cannot both append.
	if err := lockFile(f); err != nil {
		return "", errors.NewWriteError(path, err)
	}
	defer unlockFile(f)

	existing, err := io.ReadAll(f)
	if err != nil {
		return "", errors.NewWriteError(path, err)
	}
	if marker != "" && strings.Contains(string(existing), marker) {
		return path, errors.NewDuplicateOutputError(path, marker)
	}

	if _, err := f.WriteString("\n\n" + content + "\n"); err != nil {
		return "", errors.NewWriteError(path, err)
	}
	return path, nil
}
