package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/telmaron/gmailscope/internal/gmail"
)

func newSendCmd() *cobra.Command {
	var (
		to       string
		toName   string
		subject  string
		body     string
		fromName string
		replyTo  string
		threadID string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Compose and send a plain-text message",
		Long: `Send a plain-text message. The body comes from --body, or from stdin
when --body is not given.

To reply within an existing conversation, pass the Message-ID header of
the message being answered with --reply-to and its thread id with
--thread.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if body == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading body from stdin: %w", err)
				}
				body = string(data)
			}
			if body == "" {
				return fmt.Errorf("empty message body")
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			sent, err := s.client.SendMessage(s.ctx,
				gmail.Contact{Name: toName, Address: to},
				subject, body, fromName, replyTo, threadID)
			if err != nil {
				return fmt.Errorf("sending message: %w", err)
			}
			fmt.Printf("Sent %s\n", sent.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&toName, "to-name", "", "Recipient display name")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&body, "body", "", "Message body; read from stdin when omitted")
	cmd.Flags().StringVar(&fromName, "from-name", "", "Sender display name")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "Message-ID of the message being answered")
	cmd.Flags().StringVar(&threadID, "thread", "", "Thread id to attach the message to")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
