package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bintrack/internal/api"
	"bintrack/internal/config"
)

func newPhotoCmd(cfg *config.Config) *cobra.Command {
	photoCmd := &cobra.Command{
		Use:   "photo",
		Short: "Upload or fetch bin photos",
	}

	photoCmd.AddCommand(newPhotoUploadCmd(cfg))
	photoCmd.AddCommand(newPhotoGetCmd(cfg))
	return photoCmd
}

func newPhotoUploadCmd(cfg *config.Config) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <bin-id> <file>",
		Short: "Upload a photo for a bin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			binID, path := args[0], args[1]

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if contentType == "" {
				contentType = mime.TypeByExtension(filepath.Ext(path))
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UploadPhoto(cmd.Context(), binID, f, contentType)
				if err != nil {
					return err
				}
				return writePlain("%s %s\n", resp.PhotoKey, resp.PhotoURL)
			})
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (default: inferred from file extension)")
	return cmd
}

func newPhotoGetCmd(cfg *config.Config) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "get <bin-id>",
		Short: "Download a bin's photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				return fmt.Errorf("output file is required (-o)")
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return err
			}
			defer f.Close()

			return withClient(cfg, func(client *api.Client) error {
				contentType, err := client.DownloadPhoto(cmd.Context(), args[0], f)
				if err != nil {
					return err
				}
				return writePlain("%s (%s)\n", outputPath, contentType)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file")
	return cmd
}
