// Package cli implements the CLI command handlers.
package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/restgen/restgen/pkg/core/compiler"
	"github.com/restgen/restgen/pkg/core/naming"
	"github.com/restgen/restgen/pkg/errors"
)

// Config represents the restgen configuration file.
type Config struct {
	Database     DatabaseConfig  `yaml:"database"`
	Namespace    string          `yaml:"namespace"`
	TablePrefix  string          `yaml:"db_table_prefix"`
	IgnoreTables []string        `yaml:"ignore_tables"`
	StubsDir     string          `yaml:"stubs_dir"`
	Models       naming.ModelMap `yaml:"models"`
	Auth         AuthConfig      `yaml:"auth"`
	Paths        PathsConfig     `yaml:"paths"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Dialect string `yaml:"dialect"`          // postgres, sqlite, mysql
	URL     string `yaml:"url"`              // Connection string
	Schema  string `yaml:"schema,omitempty"` // PostgreSQL schema, default public
}

// AuthConfig names the tables the auth generator requires.
type AuthConfig struct {
	UsersTable          string `yaml:"users_table"`
	PasswordResetsTable string `yaml:"password_resets_table"`
}

// PathsConfig holds output directories.
type PathsConfig struct {
	Output      string `yaml:"output"`      // CRUD output root
	Controllers string `yaml:"controllers"` // application controllers
	Definitions string `yaml:"definitions"` // swagger definitions
	Routes      string `yaml:"routes"`      // route files
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dialect: "sqlite",
			URL:     "file:./database.sqlite",
		},
		Namespace:    "App",
		IgnoreTables: []string{"migrations"},
		Models:       naming.ModelMap{{Model: "user", Table: "users"}},
		Auth: AuthConfig{
			UsersTable:          "users",
			PasswordResetsTable: "password_resets",
		},
		Paths: PathsConfig{
			Output:      "storage/CRUD/",
			Controllers: "app/Http/Controllers/",
			Definitions: "app/Swagger/Definitions/",
			Routes:      "routes/",
		},
	}
}

// DefaultConfigFile is the configuration file name looked up by default.
const DefaultConfigFile = "restgen.yaml"

// CompilerPaths returns the compiler destination directories.
func (c *Config) CompilerPaths() compiler.Paths {
	return compiler.NewPaths(c.Paths.Output, c.Paths.Controllers, c.Paths.Definitions, c.Paths.Routes)
}

// Globals returns the placeholders available to every stub.
func (c *Config) Globals() compiler.Params {
	return compiler.Params{
		"namespace":           c.Namespace,
		"usersTable":          c.Auth.UsersTable,
		"passwordResetsTable": c.Auth.PasswordResetsTable,
	}
}

// Init initializes a new restgen project.
func Init(dir string) error {
	// Create directory if needed
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "creating directory")
		}
	}

	configPath := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return errors.NewConfigError(fmt.Sprintf("project already initialized: %s exists", DefaultConfigFile), nil)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultConfig()); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding config")
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return errors.NewWriteError(configPath, err)
	}
	fmt.Printf("✓ Created %s\n", configPath)

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Point database.url at your application database")
	fmt.Println("  2. List your models under models, or pass --models and --tables")
	fmt.Println("  3. Run 'restgen make-rest-api-project'")

	return nil
}

// LoadConfig loads the configuration from path. Unset keys keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError(fmt.Sprintf("%s not found", path), nil).
				WithSuggestion("Run 'restgen init' first or pass --config")
		}
		return nil, errors.NewConfigError("reading config", err)
	}

	config := DefaultConfig()
	config.Models = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("parsing %s", path), err)
	}

	return config, nil
}
