package gmail

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// Matches `"Display Name" <address>`; the quotes are optional.
var contactPattern = regexp.MustCompile(`"?(.*?)"? <(.*)>`)

// GravatarURL returns the avatar URL for an address. The hash is taken
// over the trimmed, lower-cased address, so the result is invariant to
// case and surrounding whitespace.
func GravatarURL(address string) string {
	normalized := strings.ToLower(strings.TrimSpace(address))
	sum := md5.Sum([]byte(normalized))
	return "https://secure.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}

// ParseContact parses a single mailbox string. Without an angle-bracket
// form, name and address both equal the raw string.
func ParseContact(raw string) Contact {
	var contact Contact
	if m := contactPattern.FindStringSubmatch(raw); m != nil {
		contact.Name = m[1]
		contact.Address = m[2]
	} else {
		contact.Name = raw
		contact.Address = raw
	}
	contact.GravatarURL = GravatarURL(contact.Address)
	return contact
}

// ParseContactList splits a recipient header on ", " and parses each
// segment. This is not fully RFC5322-compliant: a comma inside a quoted
// display name splits the list incorrectly. Known limitation.
func ParseContactList(raw string) ContactList {
	var contacts ContactList
	for _, part := range strings.Split(raw, ", ") {
		contacts = append(contacts, ParseContact(part))
	}
	return contacts
}
