package main

import (
	"log"
	"path/filepath"

	"github.com/draftstudio/media-backend/internal/blobstore"
	"github.com/draftstudio/media-backend/internal/config"
	"github.com/draftstudio/media-backend/internal/server"
	"github.com/draftstudio/media-backend/pkg/db/aws"
	"github.com/draftstudio/media-backend/pkg/logger"
)

func main() {
	log.Println("Starting server")
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	var blobStore blobstore.BlobStore
	if cfg.Blob.Driver == "s3" {
		s3Client, presignClient, err := aws.NewAWSClient(cfg.Blob.Endpoint, cfg.Blob.Region, cfg.Blob.AccessKey, cfg.Blob.SecretKey)
		if err != nil {
			appLogger.Fatalf("could not connect to s3: %s", err)
		}
		blobStore = blobstore.NewS3Store(s3Client, presignClient, cfg.Blob.Bucket)
		appLogger.Infof("blob store: s3 bucket %s", cfg.Blob.Bucket)
	} else {
		blobStore = blobstore.NewLocalStore(filepath.Join(cfg.Uploads.Dir, "processed"), cfg.Uploads.BaseURL)
		appLogger.Infof("blob store: local mock under %s", cfg.Uploads.Dir)
	}

	s := server.NewServer(cfg, blobStore, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Infof("could not start server: %s", err)
	}
}
