package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List the user-visible labels",
		Long: `List the labels of the account, sorted by display name. Labels hidden
from the Gmail label list are omitted. Label ids are what the --label
flag of the inbox and threads commands expects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			labels, err := s.client.Labels(s.ctx)
			if err != nil {
				return fmt.Errorf("listing labels: %w", err)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, l := range labels {
				fmt.Fprintf(tw, "%s\t%s\n", l.ID, l.Name)
			}
			return tw.Flush()
		},
	}
}
