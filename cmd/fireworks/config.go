package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fireworks/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the default fireworks configuration as YAML.

Save it to ~/.fireworks/configs/fireworks.yaml or ./configs/fireworks.yaml
and edit it; keys left out keep their default values.

Examples:
  fireworks config > ~/.fireworks/configs/fireworks.yaml
  fireworks config validate ./my-fireworks.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a configuration file",
	Args:  cobra.ExactArgs(1),
	Run:   runConfigValidate,
}

func init() {
	configValidateCmd.Flags().StringVar(&flagPreset, "preset", "", "Validate with this style preset applied")
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(_ *cobra.Command, args []string) {
	cfg, err := config.LoadFile(args[0])
	if err != nil {
		logger.Fatal("cannot load configuration", "error", err)
	}
	if err := config.ApplyPreset(&cfg, config.Preset(flagPreset)); err != nil {
		logger.Fatal("cannot apply preset", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "file", args[0], "error", err)
	}
	fmt.Printf("%s: OK\n", args[0])
}
