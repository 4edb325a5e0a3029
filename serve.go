package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Raikerian/go-telegram-cardbot/internal/app"
	"github.com/Raikerian/go-telegram-cardbot/internal/bot"
	"github.com/Raikerian/go-telegram-cardbot/internal/commands"
	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/internal/health"
	"github.com/Raikerian/go-telegram-cardbot/internal/infrastructure"
	"github.com/Raikerian/go-telegram-cardbot/internal/llm"
	"github.com/Raikerian/go-telegram-cardbot/internal/ocr"
	"github.com/Raikerian/go-telegram-cardbot/internal/scanner"
	"github.com/Raikerian/go-telegram-cardbot/internal/session"
	"github.com/Raikerian/go-telegram-cardbot/internal/sheets"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func botModules(configPath string) []fx.Option {
	return []fx.Option{
		// Core modules
		config.Module,
		infrastructure.LoggerModule,

		// External service modules
		telegram.Module,
		llm.Module,
		ocr.Module,
		sheets.Module,
		store.Module,

		// Application modules
		session.Module,
		scanner.Module,
		commands.Module,
		bot.Module,
		health.Module,

		fx.Supply(configPath),
	}
}

func runServe(ctx context.Context, configPath string) error {
	application := app.New(append(botModules(configPath), fx.WithLogger(infrastructure.NewFxLoggerAdapter))...)
	if err := application.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := application.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	fmt.Fprintln(os.Stderr, "Received shutdown signal, stopping...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := application.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Application has shut down gracefully.")

	return nil
}
