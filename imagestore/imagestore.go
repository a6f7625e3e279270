// Package imagestore selects the image storage backend at process start.
//
// Presence of remote object-store credentials picks the remote backend;
// otherwise uploads land on the local filesystem under a public-servable
// directory. The choice is made exactly once, by New; call sites only ever
// see the inkstudio.ImageStore interface.
package imagestore

import (
	"fmt"

	"github.com/bestemiy/inkstudio"
	"github.com/bestemiy/inkstudio/imagestore/local"
	"github.com/bestemiy/inkstudio/imagestore/remote"
)

// Config holds image storage configuration.
type Config struct {
	// Dir is the local uploads directory, used when no remote credentials
	// are configured.
	Dir string `mapstructure:"dir"`

	Remote RemoteConfig `mapstructure:"remote"`
}

// RemoteConfig points at a stowry object-store endpoint. Endpoint and
// AccessKey together select the remote backend.
type RemoteConfig struct {
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Enabled reports whether the remote backend should be used.
func (c RemoteConfig) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != ""
}

// New builds the configured backend. The returned cleanup function
// releases backend resources and must be called on shutdown.
func New(cfg Config) (inkstudio.ImageStore, func(), error) {
	if cfg.Remote.Enabled() {
		store := remote.New(remote.Config{
			Endpoint:  cfg.Remote.Endpoint,
			AccessKey: cfg.Remote.AccessKey,
			SecretKey: cfg.Remote.SecretKey,
			KeyPrefix: cfg.Remote.KeyPrefix,
		})
		return store, func() {}, nil
	}

	store, err := local.New(cfg.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("new image store: %w", err)
	}

	cleanup := func() { _ = store.Close() }
	return store, cleanup, nil
}
