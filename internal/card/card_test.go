package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
)

func TestExtractContacts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want card.Contacts
	}{
		{
			name: "all present",
			text: "Priya Sharma Sales Lead +91 98765 43210 priya.sharma@acme-tech.in www.acme-tech.in Pune",
			want: card.Contacts{
				Phone:   "+91 98765 43210",
				Email:   "priya.sharma@acme-tech.in",
				Website: "www.acme-tech.in",
			},
		},
		{
			name: "https website and dashed phone",
			text: "Tel: 020-2567-8901 Visit https://example.com/about now",
			want: card.Contacts{
				Phone:   "020-2567-8901",
				Email:   card.NotFound,
				Website: "https://example.com/about",
			},
		},
		{
			name: "short number is not a phone",
			text: "Office 12345 info@example.org",
			want: card.Contacts{
				Phone:   card.NotFound,
				Email:   "info@example.org",
				Website: card.NotFound,
			},
		},
		{
			name: "first of several",
			text: "a@b.com c@d.com 9876543210 or 1234567890",
			want: card.Contacts{
				Phone:   "9876543210",
				Email:   "a@b.com",
				Website: card.NotFound,
			},
		},
		{
			name: "empty text",
			text: "",
			want: card.Contacts{Phone: card.NotFound, Email: card.NotFound, Website: card.NotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, card.ExtractContacts(tt.text))
		})
	}
}

func TestMerge(t *testing.T) {
	details := card.Details{
		Name:        "Priya Sharma",
		Designation: "  ",
		Company:     "Acme Tech",
		Address:     "Pune, India",
		Industry:    "IT Services",
	}
	contacts := card.Contacts{Phone: "+91 98765 43210", Email: card.NotFound, Website: ""}

	got := card.Merge(details, contacts)

	assert.Equal(t, card.Card{
		Name:        "Priya Sharma",
		Designation: card.NotFound,
		Company:     "Acme Tech",
		Phone:       "+91 98765 43210",
		Email:       card.NotFound,
		Website:     card.NotFound,
		Address:     "Pune, India",
		Industry:    "IT Services",
		Services:    card.NotFound,
	}, got)
}

func TestCard_FieldsOrder(t *testing.T) {
	c := card.Merge(card.UnknownDetails(), card.ExtractContacts(""))

	labels := make([]string, 0, 9)
	for _, f := range c.Fields() {
		labels = append(labels, f.Label)
	}

	assert.Equal(t, card.SheetHeader[2:], labels)
	assert.True(t, c.IsEmpty())
}

func TestCard_Row(t *testing.T) {
	c := card.Card{
		Name: "A", Designation: "B", Company: "C", Phone: "D", Email: "E",
		Website: "F", Address: "G", Industry: "H", Services: "I",
	}

	row := c.Row("2026-10-17 09:30:00", 424242)

	assert.Len(t, row, len(card.SheetHeader))
	assert.Equal(t, []string{"2026-10-17 09:30:00", "424242", "A", "B", "C", "D", "E", "F", "G", "H", "I"}, row)
	assert.False(t, c.IsEmpty())
}
