package whatsapp

import (
	"net/url"
	"strings"
)

// DefaultNumber is the MAVIK business number in international format.
const DefaultNumber = "5593992273046"

// Link builds the wa.me deep link that opens a conversation with number
// pre-filled with message. The message is percent-encoded so that spaces,
// newlines and punctuation survive the round trip; spaces encode as %20
// because wa.me treats a literal '+' as text.
func Link(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + number + "?text=" + encoded
}
