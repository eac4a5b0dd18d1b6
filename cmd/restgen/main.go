package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/restgen/restgen/internal/cli"
	"github.com/restgen/restgen/internal/console"
	"github.com/restgen/restgen/pkg/core/compiler"
)

var version = "0.1.0"

var globals cli.GlobalOptions

func main() {
	rootCmd := &cobra.Command{
		Use:   "restgen",
		Short: "restgen - REST API scaffolding from your database schema",
		Long: `restgen generates the CRUD layer of a REST API project:
  • Models, transformers and resource controllers
  • Swagger definitions built from table columns
  • Resource routes and authentication scaffolding
  • Model names taken from flags, the config file or the live schema`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", cli.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "Show debug logs")
	rootCmd.PersistentFlags().BoolVar(&globals.LogJSON, "log-json", false, "Write logs as JSON")

	// Add subcommands
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(authCmd())
	for _, v := range compiler.CRUDVariants() {
		rootCmd.AddCommand(stepCmd(v))
	}
	rootCmd.AddCommand(tablesCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		console.New(false).Error(err)
		os.Exit(1)
	}
}

// initCmd creates a default configuration file
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a default restgen.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return cli.Init(dir)
		},
	}
}

// projectCmd generates the full CRUD layer
func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-rest-api-project",
		Short: "Generate models, transformers, controllers, swagger definitions and routes",
		Long: `Generate the CRUD layer for the given models.

Models are kebab-case names, tables are matched to them by position:
  restgen make-rest-api-project --models=user,user-role --tables=users,user_roles

When the lists are missing or do not match, you are asked whether to take
models from the configuration file or derive them from the database schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, _ := cmd.Flags().GetString("models")
			tables, _ := cmd.Flags().GetString("tables")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			noInteraction, _ := cmd.Flags().GetBool("no-interaction")
			return cli.MakeProject(cmd.Context(), globals, cli.ProjectFlags{
				Models:        models,
				Tables:        tables,
				DryRun:        dryRun,
				NoInteraction: noInteraction,
			})
		},
	}
	cmd.Flags().String("models", "", "Model names in kebab notation, comma separated")
	cmd.Flags().String("tables", "", "Table names, comma separated, same order as --models")
	cmd.Flags().Bool("dry-run", false, "Print generated files instead of writing them")
	cmd.Flags().Bool("no-interaction", false, "Fail instead of asking when input is invalid")
	return cmd
}

// authCmd generates authentication scaffolding
func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-rest-auth",
		Short: "Generate auth controllers, swagger definitions and routes",
		Long: `Generate authentication controllers and swagger definitions and append
the auth routes to the routes file. Requires the users and password_resets
tables (names configurable under auth in restgen.yaml).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return cli.MakeAuth(cmd.Context(), globals, dryRun)
		},
	}
	cmd.Flags().Bool("dry-run", false, "Print generated files instead of writing them")
	return cmd
}

// stepCmd runs a single CRUD compiler
func stepCmd(v compiler.Variant) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-" + v.Name,
		Short: "Generate only the " + v.Name + " step",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, _ := cmd.Flags().GetString("models")
			tables, _ := cmd.Flags().GetString("tables")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return cli.MakeStep(cmd.Context(), globals, v.Name, models, tables, dryRun)
		},
	}
	cmd.Flags().String("models", "", "Model names in kebab notation, comma separated")
	cmd.Flags().String("tables", "", "Table names, comma separated, same order as --models")
	cmd.Flags().Bool("dry-run", false, "Print generated files instead of writing them")
	return cmd
}

// tablesCmd lists schema tables
func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List database tables and the models derived from them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Tables(cmd.Context(), globals)
		},
	}
}

// watchCmd regenerates on config changes
func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the project when restgen.yaml changes",
		Long: `Watch the configuration file and regenerate the CRUD layer from its
models mapping on every change.

Use --poll on file systems without change notifications (Docker, network mounts).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.DefaultWatchOptions()
			opts.Poll, _ = cmd.Flags().GetBool("poll")
			opts.Interval, _ = cmd.Flags().GetDuration("interval")
			return cli.Watch(cmd.Context(), globals, opts)
		},
	}
	cmd.Flags().Bool("poll", false, "Use polling instead of file system events")
	cmd.Flags().Duration("interval", cli.DefaultWatchOptions().Interval, "Debounce/poll interval")
	return cmd
}
