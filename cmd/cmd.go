package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/project-console/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "project-console",
	Short:         "Project Console",
	Long:          `Command line console for the project, task and budget management API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// Containers configure through plain environment variables
	if os.Getenv("APP_ENV") == "production" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yml")
	}
	v.SetEnvPrefix("PROJECT_CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, internal.DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so a missing config file still yields a
// usable config and env overrides apply to all of them.
func setDefaults(v *viper.Viper, d *internal.Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.login_style", d.API.LoginStyle)
	v.SetDefault("session.path", d.Session.Path)
	v.SetDefault("observability.logging.level", d.Observability.Logging.Level)
	v.SetDefault("observability.logging.format", d.Observability.Logging.Format)
	v.SetDefault("observability.tracing.enabled", d.Observability.Tracing.Enabled)
	v.SetDefault("observability.tracing.service_name", d.Observability.Tracing.ServiceName)
	v.SetDefault("observability.tracing.endpoint", d.Observability.Tracing.Endpoint)
	v.SetDefault("observability.tracing.insecure", d.Observability.Tracing.Insecure)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)
	rootCmd.AddCommand(migrateCmd, configCmd, sandboxCmd)
	rootCmd.AddCommand(projectsCmd, membersCmd, docsCmd)
	rootCmd.AddCommand(tasksCmd, expensesCmd, usersCmd, auditCmd, dashboardCmd)
}
