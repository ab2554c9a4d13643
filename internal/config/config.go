package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     Logger
	Storage    StorageConfig
	Uploads    UploadsConfig
	Blob       BlobConfig
	Processing ProcessingConfig
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

// StorageConfig points at the flat JSON documents backing the media and
// draft stores.
type StorageConfig struct {
	MediaFile  string
	DraftsFile string
}

type UploadsConfig struct {
	Dir     string
	BaseURL string
}

// BlobConfig selects the blob store driver. "local" writes under the
// uploads directory and fabricates URLs; "s3" talks to a real endpoint.
type BlobConfig struct {
	Driver    string
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

type ProcessingConfig struct {
	DefaultFormat  string
	DefaultQuality string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
