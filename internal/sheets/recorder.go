// Package sheets appends scanned cards to a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
)

// TimestampLayout is the format of the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Recorder records scanned cards.
type Recorder interface {
	// EnsureHeader writes the header row when the sheet is empty.
	EnsureHeader(ctx context.Context) error
	// Append adds one row for the card scanned at the given time.
	Append(ctx context.Context, at time.Time, chatID int64, c card.Card) error
}

// SheetRecorder writes to one sheet of a spreadsheet.
type SheetRecorder struct {
	logger        *zap.Logger
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	sheetName     string
	location      *time.Location
}

// NewSheetRecorder creates a recorder. An empty sheetName targets the first sheet.
func NewSheetRecorder(logger *zap.Logger, svc *gsheets.Service, spreadsheetID, sheetName string, location *time.Location) *SheetRecorder {
	if location == nil {
		location = time.UTC
	}

	return &SheetRecorder{
		logger:        logger.Named("sheets"),
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		location:      location,
	}
}

// EnsureHeader checks cell A1 and appends card.SheetHeader when it is empty.
func (r *SheetRecorder) EnsureHeader(ctx context.Context) error {
	resp, err := r.values.Get(r.spreadsheetID, r.a1("A1:A1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read sheet header: %w", err)
	}

	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 && fmt.Sprint(resp.Values[0][0]) != "" {
		r.logger.Debug("Sheet header present", zap.String("spreadsheetID", r.spreadsheetID))

		return nil
	}

	if err := r.appendRow(ctx, card.SheetHeader); err != nil {
		return fmt.Errorf("write sheet header: %w", err)
	}
	r.logger.Info("Wrote sheet header", zap.String("spreadsheetID", r.spreadsheetID))

	return nil
}

// Append adds the card as a new row with a timestamp in the recorder's zone.
func (r *SheetRecorder) Append(ctx context.Context, at time.Time, chatID int64, c card.Card) error {
	row := c.Row(at.In(r.location).Format(TimestampLayout), chatID)
	if err := r.appendRow(ctx, row); err != nil {
		return fmt.Errorf("append card row: %w", err)
	}
	r.logger.Info("Appended card to sheet", zap.Int64("chatID", chatID), zap.String("company", c.Company))

	return nil
}

func (r *SheetRecorder) appendRow(ctx context.Context, row []string) error {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}

	_, err := r.values.Append(r.spreadsheetID, r.a1("A1"), &gsheets.ValueRange{
		Values: [][]any{cells},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	return err
}

// a1 qualifies a range with the sheet name, quoting it as A1 notation requires.
func (r *SheetRecorder) a1(cells string) string {
	if r.sheetName == "" {
		return cells
	}

	return "'" + strings.ReplaceAll(r.sheetName, "'", "''") + "'!" + cells
}

// NopRecorder discards every card.
type NopRecorder struct{}

func (NopRecorder) EnsureHeader(context.Context) error { return nil }

func (NopRecorder) Append(context.Context, time.Time, int64, card.Card) error { return nil }
