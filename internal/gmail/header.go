package gmail

import (
	"net/mail"
	"time"
)

// displayTimeLayout is the absolute display format stored in Header.Date.
const displayTimeLayout = "January 2, 2006 15:04"

// parseHeader walks the raw name/value pairs of a message payload in a
// single pass. Matching is case-sensitive on the names Gmail actually
// emits; the last occurrence of a scalar field wins, while To and Cc
// accumulate recipients.
func parseHeader(fields []headerField) Header {
	var h Header
	for _, f := range fields {
		switch f.Name {
		case "Date":
			h.Date = formatDate(f.Value)
		case "From":
			h.From = ParseContact(f.Value)
		case "To":
			h.To = append(h.To, ParseContactList(f.Value)...)
		case "Cc":
			h.Cc = append(h.Cc, ParseContactList(f.Value)...)
		case "Reply-To":
			h.ReplyTo = ParseContact(f.Value)
		case "Subject":
			h.Subject = f.Value
		case "Message-ID", "Message-Id":
			h.MessageID = f.Value
		}
	}
	return h
}

// formatDate renders an RFC2822-style date into the absolute display
// format. Unparseable input passes through unchanged.
func formatDate(raw string) string {
	t, err := mail.ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Local().Format(displayTimeLayout)
}

// FormatRelativeDate condenses a stored display date for list views:
// today shows the time of day, within a week the weekday name, within a
// year month and day, and anything older the full date. Input that is not
// in the display format passes through unchanged.
func FormatRelativeDate(display string, now time.Time) string {
	t, err := time.ParseInLocation(displayTimeLayout, display, now.Location())
	if err != nil {
		return display
	}
	if sameDay(t, now) {
		return t.Format("15:04")
	}
	days := int(startOfDay(now).Sub(startOfDay(t)).Hours() / 24)
	switch {
	case days < 7:
		return t.Format("Monday")
	case days < 365:
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
