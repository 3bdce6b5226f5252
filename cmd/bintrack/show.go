package main

import (
	"errors"

	"github.com/spf13/cobra"

	"bintrack/internal/api"
	"bintrack/internal/config"
)

func newShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <bin-id> [<bin-id>...]",
		Short: "Show bin details",
		Args:  requireAtLeastOneBinID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				responses := make([]api.BinResponse, 0, len(args))
				for _, binID := range args {
					resp, err := client.GetBin(cmd.Context(), binID)
					if err != nil {
						return err
					}
					responses = append(responses, resp)
				}
				if *jsonOutput {
					if len(responses) == 1 {
						return writeJSON(responses[0])
					}
					return writeJSON(responses)
				}
				for _, resp := range responses {
					if err := writeBinDetail(resp); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	return cmd
}

func requireAtLeastOneBinID(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("at least one bin id is required")
	}
	return nil
}
