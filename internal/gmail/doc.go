// Package gmail turns the Gmail REST+JSON API into a typed email, thread
// and label model.
//
// The package covers the protocol-heavy parts of talking to Gmail:
//   - header parsing into contacts with gravatar URLs
//   - MIME body decoding with quote-depth rendering
//   - multipart batch fetches for many message bodies in one round trip
//   - outgoing RFC822 construction (format=flowed, quoted-printable)
//   - paginated message and thread listing
//   - cooperative cancellation of in-flight calls
//
// Example usage:
//
//	cfg := api.NewConfig()
//	cfg.SetCredentials(token, clientID, clientSecret)
//	client := gmail.New(cfg)
//
//	page, err := client.MessagesList(ctx, "is:unread", "INBOX", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, email := range page.Items {
//	    fmt.Println(email.Header.Subject)
//	}
//
// Fetch variants matter: emails produced by MessagesList or by
// MessagesGet with withBody=false have no Body, and callers must treat an
// empty string as "not fetched" rather than "empty message". Network and
// server failures surface as the typed errors of the api package; a
// malformed or partially-present field never aborts a whole record, it
// just decodes to its zero value.
package gmail
