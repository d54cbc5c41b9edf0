// Command fitbuddy runs the calculators and catalog from the terminal and
// maintains the server store: device import, backup and restore.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fitbuddy/backend/internal/catalog"
	"fitbuddy/backend/internal/config"
	"fitbuddy/backend/internal/db"
	"fitbuddy/backend/internal/importer"
	"fitbuddy/backend/internal/logging"
	"fitbuddy/backend/internal/repository"
	"fitbuddy/backend/internal/service"
	"fitbuddy/backend/internal/storage"
)

type rootOptions struct {
	dbPath   string
	logLevel string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "fitbuddy",
		Short:         "FitBuddy calculators and store maintenance",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "sqlite database path (default: DB_PATH or config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(newCaloriesCmd())
	rootCmd.AddCommand(newBMICmd())
	rootCmd.AddCommand(newExercisesCmd())
	rootCmd.AddCommand(newBackupCmd(opts))
	rootCmd.AddCommand(newRestoreCmd(opts))
	rootCmd.AddCommand(newImportCmd(opts))

	return rootCmd
}

func newCaloriesCmd() *cobra.Command {
	var duration, weight float64
	cmd := &cobra.Command{
		Use:   "calories <activity>",
		Short: "Estimate calories burned for an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := service.CaloriesInput{Activity: args[0], DurationMinutes: &duration}
			if cmd.Flags().Changed("weight") {
				in.WeightLbs = &weight
			}
			result, apiErr := service.NewCalculatorService().Calories(in)
			if apiErr != nil {
				return apiErr
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"result": result})
		},
	}
	cmd.Flags().Float64Var(&duration, "duration", 0, "duration in minutes")
	cmd.Flags().Float64Var(&weight, "weight", 0, "body weight in lbs (default 160)")
	return cmd
}

func newBMICmd() *cobra.Command {
	var height, weight float64
	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Compute body mass index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, apiErr := service.NewCalculatorService().BMI(service.BMIInput{HeightCm: &height, WeightKg: &weight})
			if apiErr != nil {
				return apiErr
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"result": result})
		},
	}
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	return cmd
}

func newExercisesCmd() *cobra.Command {
	var category, query, catalogURL string
	var offline bool
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List catalog exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var items = catalog.Fallback()
			if !offline {
				client := catalog.NewClient(catalog.Options{
					BaseURL: catalogURL,
					Timeout: timeout,
					Logger:  zerolog.Nop(),
				})
				items = client.List(cmd.Context())
			}
			return writeJSON(cmd.OutOrStdout(), catalog.Filter(items, category, query))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category facet (All, Cardio, Strength, Flexibility, HIIT)")
	cmd.Flags().StringVar(&query, "q", "", "title search")
	cmd.Flags().StringVar(&catalogURL, "catalog-url", catalog.DefaultBaseURL, "catalog API base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "catalog request timeout")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the built-in exercises only")
	return cmd
}

func newBackupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Write a compressed snapshot of the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(database *sql.DB, _ zerolog.Logger) error {
				n, err := snapshot(cmd.Context(), storage.NewSQLiteBackend(database), args[0], true)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d entries to %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Load a snapshot into the store, overwriting matching keys",
		Long: "Load a snapshot into the store, overwriting matching keys.\n\n" +
			"A running server keeps serving cached values for up to STORE_CACHE_TTL and a write it makes\n" +
			"in that window replaces the restored key. Stop the server first for a consistent restore.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(database *sql.DB, _ zerolog.Logger) error {
				n, err := snapshot(cmd.Context(), storage.NewSQLiteBackend(database), args[0], false)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %d entries from %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "import <dump.json>",
		Short: "Import a device storage dump",
		Long: "Import a device storage dump.\n\n" +
			"A running server picks the imported ledgers up once its store cache entries expire\n" +
			"(STORE_CACHE_TTL). Stop the server first for a consistent import.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read dump: %w", err)
			}
			var dump map[string]string
			if err := json.Unmarshal(raw, &dump); err != nil {
				return fmt.Errorf("decode dump: %w", err)
			}

			return withStore(opts, func(database *sql.DB, logger zerolog.Logger) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				auth := service.NewAuthService(repository.NewUserRepository(database), cfg.JWTSecret, cfg.TokenTTL)
				report, err := importer.New(auth, storage.NewSQLiteBackend(database), logger).Import(cmd.Context(), dump, owner)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "email of the account receiving the ledgers (default: the dump's signed-in user)")
	return cmd
}

func snapshot(ctx context.Context, dumper storage.Dumper, path string, save bool) (int, error) {
	snap, err := storage.NewSnapshotter()
	if err != nil {
		return 0, err
	}
	defer snap.Close()

	if save {
		return snap.Save(ctx, dumper, path)
	}
	return snap.Load(ctx, dumper, path)
}

// withStore opens the configured database, brings the schema up to date and
// hands it to fn.
func withStore(opts *rootOptions, fn func(*sql.DB, zerolog.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}

	logger, closer := logging.Setup(logging.SetupParams{Level: opts.logLevel})
	defer closer.Close()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if _, err := db.RunMigrations(database, db.MigrationsFS(cfg.MigrationsDir)); err != nil {
		return err
	}
	return fn(database, logger)
}

func writeJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
