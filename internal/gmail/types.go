package gmail

// Contact is one parsed mailbox: a display name, the bare address, and a
// deterministic avatar URL derived from the address. When the source
// header had no display name, Name equals Address.
type Contact struct {
	Name        string
	Address     string
	GravatarURL string
}

// ContactList preserves the order contacts appeared in the header field.
type ContactList []Contact

// Header holds the parsed header fields of a message. Every field
// defaults to empty; unknown header names are ignored.
type Header struct {
	// Date is the display-formatted date string, or the raw header value
	// when it could not be parsed.
	Date      string
	From      Contact
	To        ContactList
	Cc        ContactList
	ReplyTo   Contact
	Subject   string
	MessageID string
}

// Email is one message. Snippet and Body may be absent depending on which
// fetch variant produced the record; an empty string means "not fetched",
// not "empty content".
type Email struct {
	ID       string
	ThreadID string
	Snippet  string
	Header   Header
	Body     string
	Labels   []string
}

// EmailList is server-returned order, never reordered by the client.
type EmailList []Email

// Label is one label id with its display name.
type Label struct {
	ID   string
	Name string
}

// LabelList is sorted case-insensitively by display name.
type LabelList []Label

// Page is one page of a paginated listing. An empty NextPageToken means
// there are no further pages; otherwise the token is passed back verbatim
// to fetch the next page.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}
