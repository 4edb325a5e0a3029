package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Raikerian/go-telegram-cardbot/internal/commands"
	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/internal/infrastructure"
)

const (
	defaultConfigPath = "config.yaml"
	startTimeout      = 30 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "cardbot",
		Short:         "Telegram bot that scans visiting cards into a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Configuration file path")

	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newScanCommand(&configPath))
	rootCmd.AddCommand(newHistoryCommand(&configPath))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "cardbot", commands.AppVersion)
		},
	}
}

// startTool starts a short-lived Fx app for a CLI command. Configuration is
// loaded without the bot-only validation. The returned func stops the app.
func startTool(ctx context.Context, configPath string, modules ...fx.Option) (func(), error) {
	options := append([]fx.Option{
		fx.Supply(configPath),
		fx.Provide(config.Load),
		infrastructure.LoggerModule,
		fx.WithLogger(infrastructure.NewFxLoggerAdapter),
	}, modules...)

	tool := fx.New(options...)
	if err := tool.Err(); err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := tool.Start(startCtx); err != nil {
		return nil, err
	}

	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = tool.Stop(stopCtx)
	}, nil
}
