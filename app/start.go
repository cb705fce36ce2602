package app

import (
	"github.com/spf13/cobra"

	"github.com/AlumniConnect/AlumniConnect/internal/config"
	"github.com/AlumniConnect/AlumniConnect/internal/daemon"
	"github.com/AlumniConnect/AlumniConnect/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Path to the configuration directory
	envFile    string // Path to the dotenv file

	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the AlumniConnect web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(cmd.Context(), &cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

// loadConfig reads the dotenv file and the configuration into cfg.
func loadConfig() error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	var err error

	cfg, err = config.ReadConfig(configPath, devMode)

	return err
}
