// Package config loads and saves sitch's persisted state: the global
// last-checked time, the followed sources of every platform with their
// own last-checked times, and the YouTube API key.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sitch/internal/domain/entity"
)

// Config is the persisted state, stored as one JSON file.
type Config struct {
	LastChecked *time.Time           `json:"last_checked,omitempty"`
	RSS         []*entity.FeedSource `json:"rss"`
	YouTube     YouTubeConfig        `json:"youtube"`
	Anime       []*entity.Anime      `json:"anime"`
	Manga       []*entity.Manga      `json:"manga"`
	Bandcamp    []*entity.Artist     `json:"bandcamp"`
}

// YouTubeConfig holds the followed channels and the Data API key that
// gates the platform.
type YouTubeConfig struct {
	APIKey   string            `json:"api_key,omitempty"`
	Channels []*entity.Channel `json:"channels"`
}

// DefaultPath returns $CONFIG_DIR/sitch/config.json, creating the sitch
// directory if needed.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.New("Could not find your system's config directory. Please specify a location for your config file.")
	}
	dir := filepath.Join(configDir, "sitch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("Could not create config directory at %s.", dir)
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file at path. A missing file yields an empty
// config. Each section is decoded independently so config files written
// before a platform existed keep working: an absent section defaults to
// its zero value, a present but invalid one is an error naming the
// section.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Couldn't read config file at %s.", path)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(contents, &sections); err != nil {
		return nil, fmt.Errorf("Couldn't parse config contents. Please check that the config file at %s is properly formatted JSON.", path)
	}

	cfg := &Config{}
	if err := decodeSection(sections, "last_checked", path, &cfg.LastChecked); err != nil {
		return nil, err
	}
	if err := decodeSection(sections, "rss", path, &cfg.RSS); err != nil {
		return nil, err
	}
	if err := decodeSection(sections, "youtube", path, &cfg.YouTube); err != nil {
		return nil, err
	}
	if err := decodeSection(sections, "anime", path, &cfg.Anime); err != nil {
		return nil, err
	}
	if err := decodeSection(sections, "manga", path, &cfg.Manga); err != nil {
		return nil, err
	}
	if err := decodeSection(sections, "bandcamp", path, &cfg.Bandcamp); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeSection decodes one named section into dst, leaving dst's zero
// value when the section is absent.
func decodeSection[T any](sections map[string]json.RawMessage, name, path string, dst *T) error {
	raw, ok := sections[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("Couldn't parse %s from %s: %v", name, path, err)
	}
	return nil
}

// Save writes the config to path as indented JSON. It runs after every
// command and after every check run, persisting reconciled per-item
// checkpoints and the advanced global checkpoint.
func (c *Config) Save(path string) error {
	contents, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	contents = append(contents, '\n')

	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("Could not write to config file at %s.", path)
	}
	return nil
}
