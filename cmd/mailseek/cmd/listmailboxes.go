package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ymatsuda/mailseek/internal/imapx"
)

var listAll bool

var listMailboxesCmd = &cobra.Command{
	Use:   "list-mailboxes",
	Short: "List the account's mailboxes",
	Long: `List the mailboxes the server advertises. By default only selectable
mailboxes are shown, which is exactly the set 'resolve' scans; --all also
shows non-selectable hierarchy containers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		imapCfg, err := imapConfig()
		if err != nil {
			return err
		}
		password, err := readPassword(imapCfg.Username, imapCfg.Host)
		if err != nil {
			return err
		}

		session, err := imapx.Dial(imapCfg, password, imapx.WithLogger(logger))
		if err != nil {
			return err
		}
		defer session.Close()

		infos, err := session.Mailboxes(cmd.Context())
		if err != nil {
			return fmt.Errorf("list mailboxes: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, info := range infos {
			if !info.Selectable && !listAll {
				continue
			}
			note := ""
			if !info.Selectable {
				note = "(not selectable)"
			}
			fmt.Fprintf(w, "%s\t%s\n", info.Name, note)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listMailboxesCmd)
	addConnectionFlags(listMailboxesCmd)
	listMailboxesCmd.Flags().BoolVar(&listAll, "all", false, "include non-selectable mailboxes")
}
