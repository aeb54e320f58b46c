package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cocoindex-io/examples/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static site",
	Long:  `Renders the content tree into the output directory, including the example catalog pages, the search index and the hydration data.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	res, _, err := b.build(cmd.Context(), progress.NewReporter())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Static site generated: %s (%d pages, %d catalog entries)\n",
		cfg.OutputDir, res.Pages, res.CatalogEntries)
	return nil
}
