package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cocoindex-io/examples/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "exsite",
	Short: "Static generator for versioned docs and example catalogs",
	Long: `exsite renders a Markdown content tree into a static documentation site
with a version selector, a tag-filtered example catalog and a GitHub star
button. It can also serve the site locally and rebuild on change.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
