package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"bintrack/internal/blobstore"
	"bintrack/internal/config"
	"bintrack/internal/server"
	"bintrack/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the bintrack API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			blobs, err := openBlobStore(cmd, cfg)
			if err != nil {
				return err
			}

			srv := server.New(addr, st, blobs, logger, server.Options{
				PhotoMaxUploadBytes:     cfg.Photos.MaxUploadBytes,
				DefaultPhotoContentType: cfg.Photos.DefaultContentType,
			})
			return srv.ListenAndServe()
		},
	}
}

func openBlobStore(cmd *cobra.Command, cfg *config.Config) (blobstore.BlobStore, error) {
	switch cfg.Blob.Backend {
	case "", "local":
		root := cfg.Blob.LocalRoot
		if root == "" {
			root = filepath.Join(filepath.Dir(cfg.DBPath), ".bintrack", "photos")
		}
		return blobstore.NewLocalDir(root)
	case "s3":
		return blobstore.NewMinioStore(cmd.Context(), blobstore.MinioConfig{
			Endpoint:  cfg.Blob.S3.Endpoint,
			AccessKey: cfg.Blob.S3.AccessKey,
			SecretKey: cfg.Blob.S3.SecretKey,
			Bucket:    cfg.Blob.S3.Bucket,
			Region:    cfg.Blob.S3.Region,
			UseSSL:    cfg.Blob.S3.UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q (expected local or s3)", cfg.Blob.Backend)
	}
}
