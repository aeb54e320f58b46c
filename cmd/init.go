package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cocoindex-io/examples/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize exsite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure exsite for your content tree and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
