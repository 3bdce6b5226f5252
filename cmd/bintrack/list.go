package main

import (
	"github.com/spf13/cobra"

	"bintrack/internal/api"
	"bintrack/internal/config"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bins, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.ListBins(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				for _, bin := range resp.Bins {
					if err := writePlain("%s\n", formatBinLine(bin)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of bins to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of bins to skip")

	return cmd
}
