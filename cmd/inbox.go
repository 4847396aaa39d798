package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInboxCmd() *cobra.Command {
	var (
		query     string
		label     string
		pageToken string
		full      bool
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List messages matching a search query",
		Long: `List one page of messages, newest first. The query uses the regular
Gmail search syntax (e.g. "is:unread from:alice"). Pagination is
explicit: when more results exist the next page token is printed, pass
it back with --page to continue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			page, err := s.client.MessagesList(s.ctx, query, label, pageToken)
			if err != nil {
				return fmt.Errorf("listing messages: %w", err)
			}

			emails := page.Items
			if full && len(emails) > 0 {
				emails, err = s.client.MessagesGetBatch(s.ctx, emails)
				if err != nil {
					return fmt.Errorf("fetching messages: %w", err)
				}
			}

			printSummaries(os.Stdout, emails)
			if page.NextPageToken != "" {
				fmt.Printf("\nMore results: --page %s\n", page.NextPageToken)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query")
	cmd.Flags().StringVar(&label, "label", "INBOX", "Restrict to a label id; empty searches all mail")
	cmd.Flags().StringVar(&pageToken, "page", "", "Page token from a previous run")
	cmd.Flags().BoolVar(&full, "full", false, "Re-fetch the page in one batch call to include headers and snippets")
	return cmd
}
