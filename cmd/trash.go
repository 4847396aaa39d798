package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trash <message-id> [message-id...]",
		Short: "Move messages to the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			for _, id := range args {
				if _, err := s.client.MessagesTrash(s.ctx, id); err != nil {
					return fmt.Errorf("trashing %s: %w", id, err)
				}
				fmt.Printf("Trashed %s\n", id)
			}
			return nil
		},
	}
}

func newUntrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untrash <message-id> [message-id...]",
		Short: "Restore messages from the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			for _, id := range args {
				if _, err := s.client.MessagesUntrash(s.ctx, id); err != nil {
					return fmt.Errorf("restoring %s: %w", id, err)
				}
				fmt.Printf("Restored %s\n", id)
			}
			return nil
		},
	}
}
