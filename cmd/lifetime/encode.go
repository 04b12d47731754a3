package main

import (
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		source   scenarioSource
		asBase64 bool
		shareURL string
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a scenario as a shareable envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := source.load(a)
			if err != nil {
				return err
			}
			codec := a.codec()

			var text string
			switch {
			case shareURL != "":
				text, err = codec.ShareURL(shareURL, params)
			case asBase64:
				text, err = codec.EncodeBase64(params)
			default:
				text, err = codec.Encode(params)
			}
			if err != nil {
				return err
			}
			return writeOut(cmd, []byte(text))
		},
	}
	source.register(cmd)
	cmd.Flags().BoolVar(&asBase64, "base64", false, "emit the base64 form of the envelope")
	cmd.Flags().StringVar(&shareURL, "share-url", "", "emit a share link built on this base URL")
	return cmd
}
