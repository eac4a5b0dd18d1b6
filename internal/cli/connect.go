package cli

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/restgen/restgen/internal/console"
	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/pkg/core/connection"
	"github.com/restgen/restgen/pkg/core/schema"
	"github.com/restgen/restgen/pkg/dialects"
	"github.com/restgen/restgen/pkg/dialects/mysql"
	"github.com/restgen/restgen/pkg/dialects/postgres"
	"github.com/restgen/restgen/pkg/dialects/sqlite"
	"github.com/restgen/restgen/pkg/errors"
)

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	LogJSON    bool
}

// session bundles what a command needs: configuration, a schema
// connection, the logger and the console.
type session struct {
	config    *Config
	conn      *dialects.Connection
	inspector *schema.Inspector
	logger    *zap.Logger
	ui        *console.Console
}

// openSession loads the configuration and connects to the database.
func openSession(ctx context.Context, opts GlobalOptions, interactive bool) (*session, error) {
	log := logger.New(opts.Verbose, opts.LogJSON)

	config, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	conn, err := connect(ctx, config)
	if err != nil {
		return nil, err
	}
	log.Debug("connected", zap.String("dialect", conn.Dialect.Name()))

	return &session{
		config:    config,
		conn:      conn,
		inspector: conn.Inspector(log),
		logger:    log,
		ui:        console.New(interactive),
	}, nil
}

func (s *session) Close() {
	s.conn.Close()
	s.logger.Sync()
}

func connect(ctx context.Context, config *Config) (*dialects.Connection, error) {
	dialect, err := getDialect(config.Database.Dialect, config.Database.Schema)
	if err != nil {
		return nil, err
	}

	db, err := connection.Open(ctx, dialect.DriverName(), config.Database.URL, connection.DefaultPoolConfig())
	if err != nil {
		return nil, errors.NewConnectionError(dialect.Name(), err)
	}

	return dialects.NewConnection(db, dialect), nil
}

var supportedDialects = []string{"postgres", "sqlite", "mysql"}

// getDialect resolves a dialect by name. schemaName selects the PostgreSQL
// schema to read and is ignored by the other dialects.
func getDialect(name, schemaName string) (dialects.Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		if schemaName != "" {
			return postgres.New().WithSchema(schemaName), nil
		}
		return postgres.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	case "mysql", "mariadb":
		return mysql.New(), nil
	default:
		e := errors.NewConfigError(
			fmt.Sprintf("unknown dialect: %s (supported: %s)", name, strings.Join(supportedDialects, ", ")), nil)
		if s := errors.SuggestSimilar(name, supportedDialects); s != "" {
			e = e.WithSuggestion(s)
		}
		return nil, e
	}
}
