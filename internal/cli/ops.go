package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/polyglot/api/internal/config"
	"github.com/polyglot/api/internal/database"
	"github.com/polyglot/api/internal/eventbus"
	"github.com/polyglot/api/internal/history"
	"github.com/polyglot/api/internal/middleware"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL history migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := database.RunMigrations(cfg.DatabaseURL, commandLogger()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the configured history backend and event bus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := commandLogger()
			out := cmd.OutOrStdout()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			store, err := history.Open(cfg, logger)
			if err != nil {
				return fmt.Errorf("history (%s): %w", cfg.HistoryBackend, err)
			}
			defer store.Close()
			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("history (%s): %w", cfg.HistoryBackend, err)
			}
			fmt.Fprintf(out, "history  %-10s ok\n", cfg.HistoryBackend)

			bus, err := eventbus.Connect(cfg.NATSURL, logger)
			if err != nil {
				return fmt.Errorf("events: %w", err)
			}
			defer bus.Close()
			if !bus.Enabled() {
				fmt.Fprintf(out, "events   %-10s disabled\n", "nats")
				return nil
			}
			if err := bus.Ping(ctx); err != nil {
				return fmt.Errorf("events: %w", err)
			}
			fmt.Fprintf(out, "events   %-10s ok\n", "nats")
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token [client-id]",
		Short: "Issue a bearer token that scopes history to client-id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := middleware.IssueClientToken(config.Load().JWTSecret, args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")
	return cmd
}

func newEventsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent generation events from JetStream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			bus, err := eventbus.Connect(cfg.NATSURL, commandLogger())
			if err != nil {
				return err
			}
			defer bus.Close()

			out := cmd.OutOrStdout()
			if !bus.Enabled() {
				fmt.Fprintln(out, "Event bus disabled; set NATS_URL.")
				return nil
			}

			events, err := bus.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, ev := range events {
				fmt.Fprintf(out, "%s  %-36s %-10s %-8s %5d chars\n",
					ev.Timestamp.Format(time.RFC3339), ev.ID, ev.Language, ev.Source, ev.CodeLength)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum events to show")
	return cmd
}
