package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Content: ContentConfig{
			Endpoint: "https://cms.example.com/graphql",
		},
	}
}

func TestValidate_MissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing http.port")
	}
}

func TestValidate_MissingContentEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Content.Endpoint = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing content.endpoint")
	}
	if err.Error() != "content.endpoint is required" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_PageSizeOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Content.DefaultPageSize = 100
	cfg.Content.MaxPageSize = 50

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_page_size exceeds max_page_size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.MaxResults != 20 {
		t.Errorf("Search.MaxResults = %d, want 20", cfg.Search.MaxResults)
	}
	if cfg.Search.MaxSuggestions != 3 {
		t.Errorf("Search.MaxSuggestions = %d, want 3", cfg.Search.MaxSuggestions)
	}
	if cfg.Locator.DefaultRadiusMiles != 25 {
		t.Errorf("Locator.DefaultRadiusMiles = %v, want 25", cfg.Locator.DefaultRadiusMiles)
	}
	if cfg.Content.CacheTTLSec != 300 {
		t.Errorf("Content.CacheTTLSec = %d, want 300", cfg.Content.CacheTTLSec)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SITEAPI_TEST_TOKEN", "secret")

	in := []byte("token: ${SITEAPI_TEST_TOKEN}\nport: ${SITEAPI_TEST_PORT:-8080}\n")
	got := string(expandEnvVars(in))
	want := "token: secret\nport: 8080\n"
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}
