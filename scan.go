package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Raikerian/go-telegram-cardbot/internal/llm"
	"github.com/Raikerian/go-telegram-cardbot/internal/ocr"
	"github.com/Raikerian/go-telegram-cardbot/internal/scanner"
)

func newScanCommand(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <image> [image...]",
		Short: "Scan card images locally and print the card",
		Long:  "Runs OCR and field extraction on local image files. Several images are merged into one card, e.g. front and back. Nothing is sent to Telegram or the spreadsheet.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images := make([][]byte, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				images = append(images, data)
			}

			var s *scanner.Scanner
			stop, err := startTool(cmd.Context(), *configPath,
				llm.Module,
				ocr.Module,
				scanner.Module,
				fx.Populate(&s),
			)
			if err != nil {
				return err
			}
			defer stop()

			result, err := s.Scan(cmd.Context(), images...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(result.Card)
			}
			fmt.Fprintln(out, renderCard(result.Card))

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the card as JSON")

	return cmd
}
