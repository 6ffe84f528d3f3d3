package config

import "testing"

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"huge port", func(c *Config) { c.Port = 70000 }},
		{"webdav collision", func(c *Config) { c.WebDAVPort = c.Port }},
		{"empty device", func(c *Config) { c.Device = "" }},
		{"short fourcc", func(c *Config) { c.FourCC = "JPG" }},
		{"zero quality", func(c *Config) { c.Quality = 0 }},
		{"quality over 100", func(c *Config) { c.Quality = 101 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.Addr(); got != ":8080" {
		t.Fatalf("addr: got %q", got)
	}
	cfg.Host = "127.0.0.1"
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Fatalf("addr with host: got %q", got)
	}
	if got := cfg.WebDAVAddr(); got != "127.0.0.1:8081" {
		t.Fatalf("webdav addr: got %q", got)
	}
}
