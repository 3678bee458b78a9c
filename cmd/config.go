package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/frahmantamala/project-console/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and scaffold configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file holding the defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !configInitForce {
			if _, err := os.Stat(configInitPath); err == nil {
				return fmt.Errorf("%s already exists, use --force to overwrite", configInitPath)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
		out, err := marshalConfig(internal.DefaultConfig())
		if err != nil {
			return err
		}
		if err := os.WriteFile(configInitPath, out, 0o600); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configInitPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		out, err := marshalConfig(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func marshalConfig(cfg *internal.Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "config.yml", "where to write the file")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}
