package card

import (
	"regexp"
	"strings"
)

var (
	phonePattern   = regexp.MustCompile(`\+?\d[\d\s\-]{8,}`)
	emailPattern   = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	websitePattern = regexp.MustCompile(`(https?://\S+|www\.\S+)`)
)

// Contacts are the fields recovered from OCR text by pattern matching.
type Contacts struct {
	Phone   string
	Email   string
	Website string
}

// ExtractContacts returns the first phone number, email address and website
// found in text. Missing values are NotFound.
func ExtractContacts(text string) Contacts {
	return Contacts{
		Phone:   firstMatch(phonePattern, text),
		Email:   firstMatch(emailPattern, text),
		Website: firstMatch(websitePattern, text),
	}
}

func firstMatch(re *regexp.Regexp, text string) string {
	m := strings.TrimSpace(re.FindString(text))
	if m == "" {
		return NotFound
	}

	return m
}
