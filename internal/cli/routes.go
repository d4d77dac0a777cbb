package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/langgate/internal/logx"
	"github.com/r9s-ai/langgate/internal/tui"
	"github.com/r9s-ai/langgate/pkg/proxyconf"
	"github.com/r9s-ai/langgate/pkg/registry"
	"github.com/r9s-ai/langgate/pkg/routes"
)

type routesOptions struct {
	noTUI    bool
	category string
}

func newRoutesCmd(root *rootOptions) *cobra.Command {
	var opts routesOptions
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List compiled routes (interactive on a terminal)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, _, err := root.loadRegistry()
			if err != nil {
				return err
			}
			rs := routes.Compile(reg)
			if c := strings.TrimSpace(opts.category); c != "" {
				cat, err := registry.ParseCategory(c)
				if err != nil {
					return err
				}
				rs = routes.CompileCategory(reg, cat)
			}

			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && !opts.noTUI && logx.IsTerminal(f) {
				return tui.Run(rs, cmd.InOrStdin(), out)
			}
			return printRoutes(out, rs)
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&opts.noTUI, "no-tui", false, "print a plain table even on a terminal")
	fs.StringVar(&opts.category, "category", "", "only show one category (grammar|speller|hyphenation|tts)")
	return cmd
}

func printRoutes(w io.Writer, rs []routes.RouteSpec) error {
	for _, r := range rs {
		if _, err := fmt.Fprintf(w, "%-12s %-28s %s\n", r.Category, r.PublicPath, proxyconf.UpstreamURL(r)); err != nil {
			return err
		}
	}
	return nil
}
