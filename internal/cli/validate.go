package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/langgate/pkg/registry"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Ingest the registry and report per-category counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, source, err := root.loadRegistry()
			if err != nil {
				return err
			}
			return printCounts(cmd.OutOrStdout(), source, reg.Counts())
		},
	}
}

func printCounts(w io.Writer, source string, c registry.Counts) error {
	_, err := fmt.Fprintf(w,
		"registry %s ok\n%-12s %d\n%-12s %d\n%-12s %d\n%-12s %d (%d voices)\n",
		source,
		registry.Grammar, c.Grammar,
		registry.Speller, c.Speller,
		registry.Hyphenation, c.Hyphenation,
		registry.TextToSpeech, c.TTS, c.Voices,
	)
	return err
}
