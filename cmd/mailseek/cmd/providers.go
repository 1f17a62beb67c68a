package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List known provider aliases",
	Long: `List the provider aliases usable with --provider. The builtin set covers
common public services; a [providers] table in the config file overrides or
extends it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, name := range cfg.ProviderNames() {
			p, _ := cfg.Provider(name)
			port := p.Port
			if port == 0 {
				port = 993
			}
			fmt.Fprintf(w, "%s\t%s:%d\n", name, p.Host, port)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
