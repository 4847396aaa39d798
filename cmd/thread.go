package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telmaron/gmailscope/internal/gmail"
)

func newThreadsCmd() *cobra.Command {
	var (
		query     string
		label     string
		pageToken string
	)

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List conversation threads matching a search query",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			page, err := s.client.ThreadsList(s.ctx, query, label, pageToken)
			if err != nil {
				return fmt.Errorf("listing threads: %w", err)
			}
			for _, id := range page.Items {
				fmt.Println(id)
			}
			if page.NextPageToken != "" {
				fmt.Printf("\nMore results: --page %s\n", page.NextPageToken)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query")
	cmd.Flags().StringVar(&label, "label", "INBOX", "Restrict to a label id; empty searches all mail")
	cmd.Flags().StringVar(&pageToken, "page", "", "Page token from a previous run")
	return cmd
}

// printThread prints full messages separated by a rule.
func printThread(emails []gmail.Email) {
	for i, e := range emails {
		if i > 0 {
			fmt.Println(strings.Repeat("-", 72))
		}
		printEmail(os.Stdout, e)
	}
}

func newThreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread <thread-id> [thread-id...]",
		Short: "Show all messages of one or more threads",
		Long: `Fetch every message of the given threads in full. Multiple thread ids
are fetched with a single batch round trip.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			if len(args) == 1 {
				msgs, err := s.client.ThreadsGet(s.ctx, args[0])
				if err != nil {
					return fmt.Errorf("fetching thread %s: %w", args[0], err)
				}
				printThread(msgs)
				return nil
			}

			msgs, err := s.client.ThreadsGetBatch(s.ctx, args)
			if err != nil {
				return fmt.Errorf("fetching threads: %w", err)
			}
			printThread(msgs)
			return nil
		},
	}
	return cmd
}
