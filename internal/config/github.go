package config

import (
	"fmt"
	"net/url"
	"time"
)

// GitHubConfig holds settings for the GitHub REST client used by the star refresher.
type GitHubConfig struct {
	// Token is an optional personal access token; anonymous calls are heavily rate limited.
	Token string
	// APIURL is the REST base URL (GitHub Enterprise installs override it).
	APIURL string
	// Timeout bounds a single GitHub API call.
	Timeout time.Duration
}

// LoadGitHubConfigFromEnv loads GitHub client configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	return GitHubConfig{
		Token:   GetEnv("GITHUB_TOKEN", ""),
		APIURL:  GetEnv("GITHUB_API_URL", "https://api.github.com/"),
		Timeout: GetEnvDuration("GITHUB_TIMEOUT", 30*time.Second),
	}
}

// Validate validates GitHub client configuration.
func (c GitHubConfig) Validate() error {
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid GITHUB_API_URL: %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("GitHub Timeout must be greater than 0")
	}
	return nil
}
