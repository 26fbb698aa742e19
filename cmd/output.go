package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputHuman = "human"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func addOutputFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "output", "o", outputHuman, "Output format: human, json or yaml")
}

func validateOutput(format string) error {
	switch format {
	case outputHuman, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: human, json, yaml)", format)
	}
}

// writeOutput prints value in the requested format. human renders the
// terminal view and is only called for the human format.
func writeOutput(cmd *cobra.Command, format string, value any, human func() (string, error)) error {
	out := cmd.OutOrStdout()

	switch format {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case outputYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		rendered, err := human()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, rendered)
		return err
	}
}
