package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bnema/motorsense/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const maskedSecret = "********"

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:               "config",
		Short:             "Manage the motorsense config file",
		PersistentPreRunE: skipWiring,
	}

	configCmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))
	return configCmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolve home directory: %w", err)
			}

			path := opts.configPath
			if path == "" {
				path = config.DefaultPath(home)
			}

			if err := config.Write(path, config.Defaults(home), force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings after defaults, file and environment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.New(), config.LoadOptions{Path: opts.configPath})
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.AI.APIKey != "" {
				cfg.AI.APIKey = maskedSecret
			}

			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Path != "" {
				if _, err := fmt.Fprintf(out, "# %s\n", cfg.Path); err != nil {
					return err
				}
			}
			_, err = out.Write(data)
			return err
		},
	}
}
