package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/evalgate/evalgate/internal/projectconfig"
	"github.com/evalgate/evalgate/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var force bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter .evalgate.yaml config",
		Long: `Create a starter .evalgate.yaml in the given directory (default: current
directory). With --interactive, prompts for each setting instead of writing
the defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return initCommandE(cmd, dir, force, interactive)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for each setting")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, force, interactive bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, projectconfig.ConfigFileName)
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
	}

	spec := wizard.NewConfigSpec()
	if interactive {
		var err error
		spec, err = wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	content, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", configPath) //nolint:errcheck
	return nil
}
