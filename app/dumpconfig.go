package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlumniConnect/AlumniConnect/internal/config"
)

func init() { //nolint: gochecknoinits
	dumpConfigCmd.Flags().StringVarP(&dumpFormat, "format", "f", "toml", "Output format: toml or json")

	rootCmd.AddCommand(dumpConfigCmd)
}

var (
	dumpFormat string

	dumpConfigCmd = &cobra.Command{
		Use:   "dump-config",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			var (
				out string
				err error
			)

			switch dumpFormat {
			case "toml":
				out, err = config.DumpConfig(&cfg)
			case "json":
				out, err = config.DumpConfigJSON(&cfg)
			default:
				return fmt.Errorf("unknown format %q", dumpFormat)
			}

			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
)
