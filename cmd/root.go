package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gmailscope application
var rootCmd = &cobra.Command{
	Use:   "gmailscope",
	Short: "Read, search and send Gmail from the terminal",
	Long: `gmailscope is a Gmail client for the terminal. It talks to the Gmail
REST API directly: list and search messages and threads, read bodies,
change read state, and send plain-text replies.

Authentication is a bearer token obtained from an external OAuth login,
passed via --token or the ` + "`GMAILSCOPE_TOKEN`" + ` environment variable.`,
	SilenceUsage: true,
}

var (
	flagToken     string
	flagAPIRoot   string
	flagBatchRoot string
	flagUserAgent string
	flagDebug     bool

	flagMetricsAddr string
	flagTrace       bool
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gmailscope version %s\n" .Version}}`)

	// If no subcommand is provided, run the inbox command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "inbox")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagToken, "token", "", "OAuth bearer token. Can also use GMAILSCOPE_TOKEN env var.")
	pf.StringVar(&flagAPIRoot, "api-root", "", "Override the Gmail API base URL (testing only)")
	pf.StringVar(&flagBatchRoot, "batch-root", "", "Override the Gmail batch endpoint URL (testing only)")
	pf.StringVar(&flagUserAgent, "user-agent", "", "Override the User-Agent sent with every request")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	pf.StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (e.g. :9090). Disabled when empty.")
	pf.BoolVar(&flagTrace, "trace", false, "Print request traces to stdout")

	rootCmd.AddCommand(newInboxCmd())
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newThreadsCmd())
	rootCmd.AddCommand(newThreadCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newTrashCmd())
	rootCmd.AddCommand(newUntrashCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
