package config

import (
	"testing"

	"github.com/doeshing/synora-ui/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr bool
	}{
		{"defaults", func(c *domain.Config) {}, false},
		{"file backend", func(c *domain.Config) { c.Storage.Backend = "file" }, false},
		{"unknown backend", func(c *domain.Config) { c.Storage.Backend = "redis" }, true},
		{"ftp url", func(c *domain.Config) { c.Boundary.BaseURL = "ftp://example.com" }, true},
		{"bad timeout", func(c *domain.Config) { c.Boundary.Timeout = "soon" }, true},
		{"negative timeout", func(c *domain.Config) { c.Boundary.Timeout = "-1s" }, true},
		{"bad log level", func(c *domain.Config) { c.LogLevel = "loud" }, true},
		{"bad language", func(c *domain.Config) { c.UI.Language = "fr" }, true},
		{"blank quick query", func(c *domain.Config) { c.UI.QuickQueries = []string{"Git", " "} }, true},
		{"relative path", func(c *domain.Config) { c.Boundary.SearchPath = "api/search" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{}
			tt.mutate(&cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
