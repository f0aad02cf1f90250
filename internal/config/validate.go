package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateTemplates(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/slate/config.toml"
		}
		return fmt.Errorf("catalog.url is required; edit %s (create with 'slate config init')", defaultPath)
	}
	if !strings.HasPrefix(c.Catalog.URL, "http://") && !strings.HasPrefix(c.Catalog.URL, "https://") {
		return fmt.Errorf("catalog.url must be an http(s) URL, got %q", c.Catalog.URL)
	}
	if c.Catalog.ScriptName == "" {
		return errors.New("catalog.script_name is required")
	}
	if c.Catalog.APIKey == "" {
		return errors.New("catalog.api_key is required (or set SLATE_CATALOG_KEY)")
	}
	if c.Catalog.ProjectID <= 0 {
		return errors.New("catalog.project_id must be a positive id")
	}
	if c.Catalog.DeliveryStatus == c.Catalog.DeliveredStatus {
		return fmt.Errorf("catalog.delivery_status and catalog.delivered_status must differ, both are %q", c.Catalog.DeliveryStatus)
	}
	return nil
}

func (c *Config) validateTemplates() error {
	if strings.TrimSpace(c.Templates.DeliveryFolder) == "" {
		return errors.New("templates.delivery_folder must be set")
	}
	sequence := strings.TrimSpace(c.Templates.DeliverySequence)
	if sequence == "" {
		return errors.New("templates.delivery_sequence must be set")
	}
	for _, token := range []string{"{Sequence}", "{Shot}"} {
		if !strings.Contains(sequence, token) {
			return fmt.Errorf("templates.delivery_sequence must contain the %s token", token)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
