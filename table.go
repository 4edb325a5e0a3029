package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
)

const scanTimeLayout = "2006-01-02 15:04"

func newTableWriter(header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(header)

	return tw
}

// renderScans prints one row per scan, newest first as given.
func renderScans(scans []store.Scan) string {
	tw := newTableWriter(table.Row{"Scanned", "Chat", "Name", "Company", "Phone", "Email", "Images"})
	for _, s := range scans {
		tw.AppendRow(table.Row{
			s.CreatedAt.Local().Format(scanTimeLayout),
			strconv.FormatInt(s.ChatID, 10),
			s.Card.Name,
			s.Card.Company,
			s.Card.Phone,
			s.Card.Email,
			s.Images,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Chat", Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Name: "Images", Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// renderCard prints a card as a two column field table.
func renderCard(c card.Card) string {
	tw := newTableWriter(table.Row{"Field", "Value"})
	for _, f := range c.Fields() {
		tw.AppendRow(table.Row{f.Label, f.Value})
	}

	return tw.Render()
}
