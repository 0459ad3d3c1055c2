// Command venture-ingest runs ingestion pipelines and maintenance tasks once,
// outside the API and the scheduler.
//
//	venture-ingest run news
//	venture-ingest classify --title "Acme raises $4M seed" --content "..."
//	venture-ingest cofounders updates.json
//	venture-ingest migrate
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"venture-feed/internal/app"
	"venture-feed/internal/infra/adapter/persistence"
	"venture-feed/internal/infra/db"
	"venture-feed/internal/infra/llm"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/usecase/ingest"
	"venture-feed/internal/usecase/merge"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "venture-ingest",
		Short:        "Run venture feed ingestion tasks once",
		SilenceUsage: true,
	}
	root.AddCommand(
		newRunCmd(logger),
		newKindsCmd(),
		newClassifyCmd(),
		newCofoundersCmd(logger),
		newMigrateCmd(logger),
	)
	return root
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the ingestion pipelines",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, k := range ingest.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		},
	}
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "run <kind>",
		Short: "Run one ingestion pipeline and print its stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ingest.ParseKind(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			conn, repos, err := openRepos(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			ing, err := app.NewIngestion(logger, repos, app.Options{NotifyMaxConcurrent: 4, RunTimeout: timeout})
			if err != nil {
				return err
			}
			defer func() {
				drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				_ = ing.Shutdown(drainCtx)
			}()

			stats, runErr := ing.Runner.Run(ctx, kind)
			if stats != nil {
				if err := writeJSON(cmd.OutOrStdout(), stats); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "upper bound for the run")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var title, content, tracked string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one article with the configured LLM and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := llm.LoadConfigFromEnv()
			if err != nil {
				return err
			}
			classifier := llm.NewClassifier(cfg)
			if !classifier.Enabled() {
				return fmt.Errorf("no API key configured for provider %q", cfg.Provider)
			}
			result, err := classifier.ClassifyArticle(cmd.Context(), title, content, tracked)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "article title")
	cmd.Flags().StringVar(&content, "content", "", "article body")
	cmd.Flags().StringVar(&tracked, "tracked", "", "startup name to focus the classification on")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newCofoundersCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "cofounders <file.json>",
		Short: "Apply a JSON array of cofounder LinkedIn updates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := readCofounderUpdates(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			conn, repos, err := openRepos(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			n, err := merge.NewResolver(repos.Startups, logger).SetCofounderLinkedIns(ctx, updates)
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d of %d startups\n", n, len(updates))
			return err
		},
	}
}

func newMigrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema to DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, _, err := openRepos(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()
			logger.Info("schema is up to date")
			return nil
		},
	}
}

// openRepos opens DATABASE_URL, migrates it and builds the repositories.
func openRepos(ctx context.Context) (*sql.DB, *persistence.Repositories, error) {
	conn, dialect, err := db.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn, dialect); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	repos, err := persistence.New(conn, dialect)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, repos, nil
}

func readCofounderUpdates(path string) ([]merge.CofounderUpdate, error) {
	// #nosec G304 -- path is an operator-supplied CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var updates []merge.CofounderUpdate
	if err := json.Unmarshal(data, &updates); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%s holds no updates", path)
	}
	return updates, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
