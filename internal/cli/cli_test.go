package cli

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/restgen/restgen/pkg/core/naming"
	"github.com/restgen/restgen/pkg/errors"
)

// setupProject creates a SQLite database with tables and a config file
// pointing every output path into a temp directory.
func setupProject(t *testing.T, tables ...string) (string, GlobalOptions) {
	t.Helper()
	dir := t.TempDir()

	dbPath := filepath.Join(dir, "database.sqlite")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	for _, table := range tables {
		_, err := db.Exec(`CREATE TABLE ` + table + ` (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			note TEXT,
			created_at DATETIME
		)`)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	config := DefaultConfig()
	config.Database.URL = "file:" + dbPath
	config.Paths = PathsConfig{
		Output:      filepath.Join(dir, "storage", "CRUD"),
		Controllers: filepath.Join(dir, "app", "Http", "Controllers"),
		Definitions: filepath.Join(dir, "app", "Swagger", "Definitions"),
		Routes:      filepath.Join(dir, "routes"),
	}
	data, err := yaml.Marshal(config)
	require.NoError(t, err)

	configPath := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(configPath, data, 0644))

	return dir, GlobalOptions{ConfigPath: configPath}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")

	require.NoError(t, Init(dir))

	config, err := LoadConfig(filepath.Join(dir, DefaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	err = Init(dir)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfig))
}

func TestLoadConfigKeepsDefaultsAndModelOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	src := `
database:
  dialect: mysql
  url: "root@tcp(127.0.0.1:3306)/app"
  schema: billing
db_table_prefix: api_
models:
  user-role: api_user_roles
  user: api_users
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", config.Database.Dialect)
	assert.Equal(t, "billing", config.Database.Schema)
	assert.Equal(t, "api_", config.TablePrefix)
	assert.Equal(t, "App", config.Namespace)
	assert.Equal(t, "routes/", config.Paths.Routes)
	assert.Equal(t, naming.ModelMap{
		{Model: "user-role", Table: "api_user_roles"},
		{Model: "user", Table: "api_users"},
	}, config.Models)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfig))
}

func TestGetDialect(t *testing.T) {
	for _, name := range []string{"postgres", "PostgreSQL", "sqlite3", "mysql"} {
		_, err := getDialect(name, "")
		assert.NoError(t, err, name)
	}

	_, err := getDialect("postgress", "")
	require.Error(t, err)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errors.ErrConfig, e.Code)
	assert.Equal(t, "Did you mean 'postgres'?", e.Suggestion)
}

func TestGetDialectPostgresSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("information_schema.tables").
		WithArgs("billing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("invoices"))
	mock.ExpectQuery("information_schema.tables").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))

	dialect, err := getDialect("postgres", "billing")
	require.NoError(t, err)
	tables, err := dialect.IntrospectTables(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoices"}, tables)

	dialect, err = getDialect("postgres", "")
	require.NoError(t, err)
	tables, err = dialect.IntrospectTables(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, tables)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectFailure(t *testing.T) {
	config := DefaultConfig()
	config.Database.URL = "file:" + filepath.Join(t.TempDir(), "missing", "db.sqlite") + "?mode=ro"

	_, err := connect(context.Background(), config)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConnection))
}

func TestMakeProject(t *testing.T) {
	dir, opts := setupProject(t, "users", "user_roles")

	err := MakeProject(context.Background(), opts, ProjectFlags{
		Models:        "user,user-role",
		Tables:        "users,user_roles",
		NoInteraction: true,
	})
	require.NoError(t, err)

	out := filepath.Join(dir, "storage", "CRUD")
	for _, file := range []string{
		"Models/User.php", "Models/UserRole.php",
		"Transformers/UserTransformer.php", "Transformers/UserRoleTransformer.php",
		"Controllers/UserController.php", "Controllers/UserRoleController.php",
		"Definitions/User.php", "Definitions/UserRole.php",
		"routes/api.php",
	} {
		assert.FileExists(t, filepath.Join(out, file))
	}

	model, err := os.ReadFile(filepath.Join(out, "Models", "UserRole.php"))
	require.NoError(t, err)
	assert.Contains(t, string(model), "protected $table = 'user_roles';")
	assert.Contains(t, string(model), "protected $fillable = ['name', 'note'];")

	definition, err := os.ReadFile(filepath.Join(out, "Definitions", "User.php"))
	require.NoError(t, err)
	assert.Contains(t, string(definition), `required={"name"}`)
}

func TestMakeProjectNoInteractionAborts(t *testing.T) {
	dir, opts := setupProject(t, "users")

	err := MakeProject(context.Background(), opts, ProjectFlags{Models: "user,post", Tables: "users", NoInteraction: true})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInputValidation))
	assert.NoDirExists(t, filepath.Join(dir, "storage"))
}

func TestMakeProjectDryRun(t *testing.T) {
	dir, opts := setupProject(t, "users")

	err := MakeProject(context.Background(), opts, ProjectFlags{Models: "user", Tables: "users", DryRun: true, NoInteraction: true})
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "storage"))
}

func TestMakeAuth(t *testing.T) {
	dir, opts := setupProject(t, "users", "password_resets")

	require.NoError(t, MakeAuth(context.Background(), opts, false))
	require.NoError(t, MakeAuth(context.Background(), opts, false))

	assert.FileExists(t, filepath.Join(dir, "app", "Http", "Controllers", "Auth", "AuthController.php"))
	assert.FileExists(t, filepath.Join(dir, "app", "Swagger", "Definitions", "ResetLinkRequest.php"))

	routes, err := os.ReadFile(filepath.Join(dir, "routes", "api.php"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(routes), "Auth Routes"))
}

func TestMakeAuthMissingTables(t *testing.T) {
	dir, opts := setupProject(t, "users")

	require.NoError(t, MakeAuth(context.Background(), opts, false))
	assert.NoDirExists(t, filepath.Join(dir, "app"))
	assert.NoDirExists(t, filepath.Join(dir, "routes"))
}

func TestMakeStep(t *testing.T) {
	dir, opts := setupProject(t, "users")

	require.NoError(t, MakeStep(context.Background(), opts, "crud-transformers", "user", "", false))
	assert.FileExists(t, filepath.Join(dir, "storage", "CRUD", "Transformers", "UserTransformer.php"))
	assert.NoDirExists(t, filepath.Join(dir, "storage", "CRUD", "Models"))

	err := MakeStep(context.Background(), opts, "crud-models", "", "", false)
	assert.True(t, errors.HasCode(err, errors.ErrInputValidation))

	err = MakeStep(context.Background(), opts, "crud-models", "user,", "", false)
	assert.True(t, errors.HasCode(err, errors.ErrInputValidation))
	assert.NoFileExists(t, filepath.Join(dir, "storage", "CRUD", "Models", ".php"))
	assert.NoDirExists(t, filepath.Join(dir, "storage", "CRUD", "Models"))
}

func TestPrintTables(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	config := DefaultConfig()
	config.TablePrefix = "api_"

	var buf bytes.Buffer
	require.NoError(t, printTables(&buf, []string{"api_user_roles", "migrations", "api_categories"}, config))

	rows := make(map[string]string)
	for _, line := range strings.Split(buf.String(), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			rows[fields[0]] = line
		}
	}
	assert.Contains(t, rows["api_user_roles"], "user-role")
	assert.Contains(t, rows["api_user_roles"], "UserRole")
	assert.Contains(t, rows["migrations"], "(ignored)")
	assert.Contains(t, rows["api_categories"], "Category")
}

func TestIsConfigEvent(t *testing.T) {
	configPath, err := filepath.Abs(DefaultConfigFile)
	require.NoError(t, err)

	assert.True(t, isConfigEvent(fsnotify.Event{Name: DefaultConfigFile, Op: fsnotify.Write}, configPath))
	assert.True(t, isConfigEvent(fsnotify.Event{Name: configPath, Op: fsnotify.Create}, configPath))
	assert.False(t, isConfigEvent(fsnotify.Event{Name: configPath, Op: fsnotify.Remove}, configPath))
	assert.False(t, isConfigEvent(fsnotify.Event{Name: "other.yaml", Op: fsnotify.Write}, configPath))
}
