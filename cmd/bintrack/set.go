package main

import (
	"errors"

	"github.com/spf13/cobra"

	"bintrack/internal/api"
	"bintrack/internal/config"
)

type setCmdOptions struct {
	caseCode string
	binType  string
	notes    string
}

func newSetCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &setCmdOptions{}
	cmd := &cobra.Command{
		Use:   "set <bin-id>",
		Short: "Set bin metadata fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := buildBinUpdate(cmd, opts)
			if !update.HasFields() {
				return errors.New("no fields to set")
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UpsertBin(cmd.Context(), args[0], update)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeBinDetail(resp.Bin)
			})
		},
	}

	cmd.Flags().StringVar(&opts.caseCode, "case-code", "", "case code printed on the paired case")
	cmd.Flags().StringVar(&opts.binType, "bin-type", "", "bin type (e.g. plastic, cardboard)")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "free-form notes")

	return cmd
}

// buildBinUpdate maps flag presence to pointer fields: a flag that was set,
// even to "", overwrites the stored value; an unset flag leaves it alone.
func buildBinUpdate(cmd *cobra.Command, opts *setCmdOptions) api.BinUpdate {
	update := api.BinUpdate{}
	if cmd.Flags().Changed("case-code") {
		update.CaseCode = &opts.caseCode
	}
	if cmd.Flags().Changed("bin-type") {
		update.BinType = &opts.binType
	}
	if cmd.Flags().Changed("notes") {
		update.Notes = &opts.notes
	}
	return update
}
