package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/telmaron/gmailscope/internal/gmail"
)

func sender(e gmail.Email) string {
	if e.Header.From.Name != "" {
		return e.Header.From.Name
	}
	return e.Header.From.Address
}

// printSummaries renders one line per message: id, relative date, sender
// and subject or snippet.
func printSummaries(w io.Writer, emails []gmail.Email) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	now := time.Now()
	for _, e := range emails {
		line := e.Header.Subject
		if line == "" {
			line = e.Snippet
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.ID, gmail.FormatRelativeDate(e.Header.Date, now), sender(e), line)
	}
	tw.Flush()
}

// printEmail renders a full message: the parsed headers followed by the
// decoded body with the display markup stripped back to plain text.
func printEmail(w io.Writer, e gmail.Email) {
	fmt.Fprintf(w, "From: %s\n", formatContact(e.Header.From))
	if len(e.Header.To) > 0 {
		fmt.Fprintf(w, "To: %s\n", formatContacts(e.Header.To))
	}
	if len(e.Header.Cc) > 0 {
		fmt.Fprintf(w, "Cc: %s\n", formatContacts(e.Header.Cc))
	}
	fmt.Fprintf(w, "Date: %s\n", e.Header.Date)
	fmt.Fprintf(w, "Subject: %s\n", e.Header.Subject)
	fmt.Fprintln(w)
	body := e.Body
	if body == "" {
		body = e.Snippet
	}
	fmt.Fprintln(w, plainBody(body))
}

func formatContact(c gmail.Contact) string {
	if c.Name != "" && c.Name != c.Address {
		return fmt.Sprintf("%s <%s>", c.Name, c.Address)
	}
	return c.Address
}

func formatContacts(cs gmail.ContactList) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, formatContact(c))
	}
	return strings.Join(parts, ", ")
}

// plainBody strips the markup of a decoded body for terminal output:
// break markers become newlines, quote color spans become "> " prefixes.
func plainBody(body string) string {
	var b strings.Builder
	depth := 0
	atLineStart := true
	for len(body) > 0 {
		switch {
		case strings.HasPrefix(body, "<br>"):
			b.WriteByte('\n')
			atLineStart = true
			body = body[len("<br>"):]
		case strings.HasPrefix(body, "<font color="):
			depth++
			end := strings.Index(body, ">")
			body = body[end+1:]
		case strings.HasPrefix(body, "</font>"):
			depth--
			body = body[len("</font>"):]
		default:
			if atLineStart {
				b.WriteString(strings.Repeat("> ", depth))
				atLineStart = false
			}
			b.WriteByte(body[0])
			body = body[1:]
		}
	}
	return b.String()
}
