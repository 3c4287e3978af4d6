// Package share builds the WhatsApp deep link offered on the result page.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

const linkBase = "https://wa.me/?text="

// BuildMessage renders the share text. When no backup URL exists the message
// points back to the in-app download instead.
func BuildMessage(name, career, backupURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s's Future Career Self!\n\n", name)
	fmt.Fprintf(&b, "Looking great as a future %s, age 25-30.\n", career)
	if backupURL != "" {
		fmt.Fprintf(&b, "\nDownload image: %s\n", backupURL)
	} else {
		b.WriteString("\nDownload is available inside the app.\n")
	}
	return b.String()
}

// Link URL-encodes the message into the wa.me deep-link template.
func Link(message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return linkBase + encoded
}
