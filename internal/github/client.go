// Package github reads repository metadata from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	goGithub "github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"

	appConfig "github.com/festy23/fixthisbug/internal/config"
)

// Client wraps the go-github REST client.
type Client struct {
	client *goGithub.Client
}

// New builds a client from cfg. httpClient may be nil; its transport is
// wrapped with a bearer token when cfg.Token is set.
func New(cfg appConfig.GitHubConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if cfg.Token != "" {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
				Base:   base,
			},
			Timeout: httpClient.Timeout,
		}
	}

	client := goGithub.NewClient(httpClient)

	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = "https://api.github.com/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse GitHub API URL %q: %w", baseURL, err)
	}
	client.BaseURL = parsed

	return &Client{client: client}, nil
}

// StarCount returns the stargazer count of owner/name.
func (c *Client) StarCount(ctx context.Context, owner, name string) (int, error) {
	repo, _, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return 0, wrapRESTError("get repository "+owner+"/"+name, err)
	}
	return repo.GetStargazersCount(), nil
}

// statusError carries the HTTP status of a failed API call.
type statusError struct {
	StatusCode int
	Err        error
}

func (e *statusError) Error() string {
	return fmt.Sprintf("github status %d: %v", e.StatusCode, e.Err)
}

func (e *statusError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status code of a failed call when available.
func StatusCode(err error) (int, bool) {
	var stErr *statusError
	if errors.As(err, &stErr) {
		return stErr.StatusCode, true
	}
	return 0, false
}

// IsNotFound reports whether the repository does not exist or is private.
func IsNotFound(err error) bool {
	status, ok := StatusCode(err)
	return ok && status == http.StatusNotFound
}

func wrapRESTError(op string, err error) error {
	var respErr *goGithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return fmt.Errorf("%s: %w", op, &statusError{
			StatusCode: respErr.Response.StatusCode,
			Err:        err,
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}
