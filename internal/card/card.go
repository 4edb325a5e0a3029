// Package card models a scanned visiting card and the rules for assembling
// one from OCR text and model-inferred details.
package card

import (
	"strconv"
	"strings"
)

// NotFound is recorded for every field that could not be determined.
const NotFound = "Not Found"

// Field labels, in display and spreadsheet order.
const (
	LabelName        = "Name"
	LabelDesignation = "Designation"
	LabelCompany     = "Company"
	LabelPhone       = "Phone"
	LabelEmail       = "Email"
	LabelWebsite     = "Website"
	LabelAddress     = "Address"
	LabelIndustry    = "Industry"
	LabelServices    = "Services"
)

// SheetHeader is the header row written to an empty spreadsheet.
var SheetHeader = []string{
	"Timestamp (IST)",
	"Telegram_ID",
	LabelName,
	LabelDesignation,
	LabelCompany,
	LabelPhone,
	LabelEmail,
	LabelWebsite,
	LabelAddress,
	LabelIndustry,
	LabelServices,
}

// Card is the merged result of a scan.
type Card struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	Industry    string `json:"industry"`
	Services    string `json:"services"`
}

// Details are the fields inferred by the language model.
type Details struct {
	Name        string
	Designation string
	Company     string
	Address     string
	Industry    string
	Services    string
}

// UnknownDetails returns Details with every field set to NotFound.
func UnknownDetails() Details {
	return Details{
		Name:        NotFound,
		Designation: NotFound,
		Company:     NotFound,
		Address:     NotFound,
		Industry:    NotFound,
		Services:    NotFound,
	}
}

// Field is a labelled card value.
type Field struct {
	Label string
	Value string
}

// Merge combines model details with regex contacts. Blank values become NotFound.
func Merge(d Details, c Contacts) Card {
	return Card{
		Name:        orNotFound(d.Name),
		Designation: orNotFound(d.Designation),
		Company:     orNotFound(d.Company),
		Phone:       orNotFound(c.Phone),
		Email:       orNotFound(c.Email),
		Website:     orNotFound(c.Website),
		Address:     orNotFound(d.Address),
		Industry:    orNotFound(d.Industry),
		Services:    orNotFound(d.Services),
	}
}

// Fields returns the card values in display order.
func (c Card) Fields() []Field {
	return []Field{
		{LabelName, c.Name},
		{LabelDesignation, c.Designation},
		{LabelCompany, c.Company},
		{LabelPhone, c.Phone},
		{LabelEmail, c.Email},
		{LabelWebsite, c.Website},
		{LabelAddress, c.Address},
		{LabelIndustry, c.Industry},
		{LabelServices, c.Services},
	}
}

// Row returns the spreadsheet row for the card in SheetHeader order.
func (c Card) Row(timestamp string, chatID int64) []string {
	row := make([]string, 0, len(SheetHeader))
	row = append(row, timestamp, strconv.FormatInt(chatID, 10))
	for _, f := range c.Fields() {
		row = append(row, f.Value)
	}

	return row
}

// IsEmpty reports whether nothing at all was recognised.
func (c Card) IsEmpty() bool {
	for _, f := range c.Fields() {
		if f.Value != NotFound {
			return false
		}
	}

	return true
}

func orNotFound(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return NotFound
	}

	return v
}
