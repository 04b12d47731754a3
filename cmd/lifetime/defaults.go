package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shivbijlani/lifetime/internal/scenario"
)

func newDefaultsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print a freshly generated default scenario",
		Long: `Print the scenario used when no input is given. Defaults are randomized
but stable within the current hour.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := scenario.Defaults()
			var data []byte
			var err error
			switch strings.ToLower(format) {
			case "yaml", "yml":
				data, err = yaml.Marshal(scenario.NewEnvelope(params))
			case "json":
				var s string
				s, err = a.codec().Encode(params)
				data = []byte(s)
			case "envelope":
				data, err = json.MarshalIndent(scenario.NewEnvelope(params), "", "  ")
			case "base64":
				var s string
				s, err = a.codec().EncodeBase64(params)
				data = []byte(s)
			default:
				return fmt.Errorf("unsupported defaults format %q (yaml, json, envelope, base64)", format)
			}
			if err != nil {
				return err
			}
			return writeOut(cmd, data)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml, json, envelope, base64")
	return cmd
}
