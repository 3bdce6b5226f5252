package main

import (
	"os"

	"github.com/spf13/cobra"

	"bintrack/internal/api"
	"bintrack/internal/config"
	"bintrack/internal/format"
)

const exportPageSize = 500

// exportRecord is the YAML export shape for one bin.
type exportRecord struct {
	BinID     string  `yaml:"bin_id" json:"bin_id"`
	CaseCode  *string `yaml:"case_code" json:"case_code"`
	BinType   *string `yaml:"bin_type" json:"bin_type"`
	Notes     *string `yaml:"notes" json:"notes"`
	PhotoURL  *string `yaml:"photo_url,omitempty" json:"photo_url,omitempty"`
	UpdatedAt int64   `yaml:"updated_at" json:"updated_at"`
}

func newExportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all bins as YAML (or JSON with --json)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				records := []exportRecord{}
				offset := 0
				for {
					resp, err := client.ListBins(cmd.Context(), exportPageSize, offset)
					if err != nil {
						return err
					}
					if len(resp.Bins) == 0 {
						break
					}
					for _, bin := range resp.Bins {
						records = append(records, exportRecord{
							BinID:     bin.BinID,
							CaseCode:  bin.CaseCode,
							BinType:   bin.BinType,
							Notes:     bin.Notes,
							PhotoURL:  bin.PhotoURL,
							UpdatedAt: bin.UpdatedAt,
						})
					}
					offset += len(resp.Bins)
				}

				w := os.Stdout
				if outputPath != "" {
					f, err := os.Create(outputPath)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}

				var formatter format.Formatter = format.YAMLFormatter{}
				if *jsonOutput {
					formatter = format.JSONFormatter{}
				}
				return formatter.Write(w, records)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}
