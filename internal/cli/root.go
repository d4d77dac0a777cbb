// Package cli wires the langgate commands.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/langgate/internal/config"
	"github.com/r9s-ai/langgate/pkg/registry"
)

const defaultConfigPath = "langgate.yaml"

type rootOptions struct {
	cfgPath      string
	registryPath string
}

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfgPath: defaultConfigPath}
	cmd := &cobra.Command{
		Use:           "langgate",
		Short:         "Compile the language service registry into proxy routes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.cfgPath, "config", "c", defaultConfigPath, "service config yaml path (optional)")
	pf.StringVarP(&opts.registryPath, "registry", "r", "", "registry file (.toml/.yaml); default: embedded registry")

	cmd.AddCommand(
		newServeCmd(opts),
		newGenerateCmd(opts),
		newValidateCmd(opts),
		newRoutesCmd(opts),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadIfExists(strings.TrimSpace(o.cfgPath))
}

// registryFile resolves --registry, then registry.file from cfg. Empty selects
// the embedded registry.
func (o *rootOptions) registryFile(cfg *config.Config) string {
	if p := strings.TrimSpace(o.registryPath); p != "" {
		return p
	}
	if cfg != nil {
		return strings.TrimSpace(cfg.Registry.File)
	}
	return ""
}

func (o *rootOptions) loadRegistry() (*config.Config, *registry.Registry, string, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, "", err
	}
	reg, source, err := registry.LoadOrDefault(o.registryFile(cfg))
	if err != nil {
		return nil, nil, "", err
	}
	return cfg, reg, source, nil
}
