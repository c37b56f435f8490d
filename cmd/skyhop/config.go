package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration skyhop would play with, as YAML.

The output is a complete config file. Save it to
~/.skyhop/configs/skyhop.yaml or ./configs/skyhop.yaml and edit it to
override the defaults.

Examples:
  skyhop config
  skyhop config --config ./my-skyhop.yaml > merged.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	data, err := config.Marshal(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "# fingerprint: %s\n", config.Fingerprint(cfg))
	os.Stdout.Write(data)
}
