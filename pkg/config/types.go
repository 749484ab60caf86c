// Package config provides configuration loading and validation for pdbdiff.
package config

import (
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Registry RegistryConfig  `yaml:"registry"`
	Output   string          `yaml:"output,omitempty"` // text, json
	Color    string          `yaml:"color,omitempty"`  // auto, always, never
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// RegistryConfig describes the PeeringDB API endpoint.
type RegistryConfig struct {
	// URL is the API root; "/net" is appended per query.
	URL string `yaml:"url"`

	// Timeout bounds each registry request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent is sent with every registry request.
	UserAgent string `yaml:"user_agent,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnDifferences fires only when the report lists entries (default).
	WebhookTriggerOnDifferences WebhookTrigger = "on_differences"
	// WebhookTriggerAlways fires after every comparison.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending comparison reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_differences" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DisplayName returns the webhook name, falling back to its URL.
func (w WebhookConfig) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.URL
}
