package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

func newDecodeCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode PAYLOAD",
		Short: "Decode a scenario envelope, base64 payload or share URL",
		Long: `Decode a scenario payload and print the merged scenario. Payloads that
cannot be decoded fall back to generated defaults, as shared links do; the
reason is reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(args[0])
			if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
				fromURL, err := scenario.FromURL(text)
				if err != nil {
					return err
				}
				text = fromURL
			}

			var params domain.ScenarioParams
			stderr := cmd.ErrOrStderr()
			decoded, err := a.codec().Parse(text)
			if err != nil {
				a.metrics.DecodeFallback(err)
				fmt.Fprintf(stderr, "Could not decode scenario (%v); showing defaults\n", err)
				params = scenario.Defaults()
			} else {
				params = decoded.Params
				r := decoded.Report
				if len(r.Rejected) > 0 {
					fmt.Fprintf(stderr, "Ignored unusable values: %s\n", strings.Join(r.Rejected, ", "))
				}
				if r.Dropped > 0 {
					fmt.Fprintf(stderr, "Dropped %d incomplete mortgage or support entries\n", r.Dropped)
				}
				if len(r.Unknown) > 0 {
					fmt.Fprintf(stderr, "Ignored unknown fields: %s\n", strings.Join(r.Unknown, ", "))
				}
				a.log.Debugf("Decoded %s payload, rules applied: %s", decoded.Encoding, strings.Join(r.Migrations, ", "))
			}

			envelope := scenario.NewEnvelope(params)
			var data []byte
			switch strings.ToLower(format) {
			case "yaml", "yml":
				data, err = yaml.Marshal(envelope)
			case "json":
				data, err = json.MarshalIndent(envelope, "", "  ")
			default:
				return fmt.Errorf("unsupported decode format %q (yaml, json)", format)
			}
			if err != nil {
				return err
			}
			return writeOut(cmd, data)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml, json")
	return cmd
}
