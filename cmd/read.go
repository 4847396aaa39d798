package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	var (
		keepUnread bool
		markUnread bool
	)

	cmd := &cobra.Command{
		Use:   "read <message-id>",
		Short: "Show a single message",
		Long: `Fetch one message in full and print its headers and plain-text body.
Reading a message clears its unread state unless --keep-unread is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			id := args[0]
			email, err := s.client.MessagesGet(s.ctx, id, true)
			if err != nil {
				return fmt.Errorf("fetching message %s: %w", id, err)
			}
			printEmail(os.Stdout, email)

			switch {
			case markUnread:
				_, err = s.client.MessagesSetUnread(s.ctx, id, true)
			case !keepUnread:
				_, err = s.client.MessagesSetUnread(s.ctx, id, false)
			}
			if err != nil {
				return fmt.Errorf("updating read state of %s: %w", id, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepUnread, "keep-unread", false, "Do not clear the unread state")
	cmd.Flags().BoolVar(&markUnread, "unread", false, "Mark the message unread after reading")
	return cmd
}
