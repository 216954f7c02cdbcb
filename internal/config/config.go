package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// StorefrontConfig carries the tunables that are not connection settings.
// Endpoints and credentials stay in the environment; this file covers cart
// retention and image serving.
type StorefrontConfig struct {
	Cart   CartConfig   `toml:"cart"`
	Images ImagesConfig `toml:"images"`
}

// CartConfig controls snapshot retention.
type CartConfig struct {
	SnapshotTTLHours     int `toml:"snapshot_ttl_hours"`
	IdleHours            int `toml:"idle_hours"`
	PurgeIntervalMinutes int `toml:"purge_interval_minutes"`
}

// ImagesConfig controls product image storage and presigning.
type ImagesConfig struct {
	Bucket               string `toml:"bucket"`
	PresignExpiryMinutes int    `toml:"presign_expiry_minutes"`
}

// DefaultStorefrontConfig returns the settings used when no config file is
// given: snapshots live a week, abandoned carts are purged after two days
// idle, presigned image URLs last an hour.
func DefaultStorefrontConfig() *StorefrontConfig {
	return &StorefrontConfig{
		Cart: CartConfig{
			SnapshotTTLHours:     168,
			IdleHours:            48,
			PurgeIntervalMinutes: 60,
		},
		Images: ImagesConfig{
			Bucket:               "farmfresh-product-images",
			PresignExpiryMinutes: 60,
		},
	}
}

// LoadStorefrontConfig loads configuration from a TOML file, filling
// unset values from the defaults.
func LoadStorefrontConfig(filename string) (*StorefrontConfig, error) {
	config := DefaultStorefrontConfig()
	if _, err := toml.DecodeFile(filename, config); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return config, nil
}

func (c *StorefrontConfig) SnapshotTTL() time.Duration {
	return time.Duration(c.Cart.SnapshotTTLHours) * time.Hour
}

func (c *StorefrontConfig) IdleWindow() time.Duration {
	return time.Duration(c.Cart.IdleHours) * time.Hour
}

func (c *StorefrontConfig) PurgeInterval() time.Duration {
	return time.Duration(c.Cart.PurgeIntervalMinutes) * time.Minute
}

func (c *StorefrontConfig) PresignExpiry() time.Duration {
	return time.Duration(c.Images.PresignExpiryMinutes) * time.Minute
}
