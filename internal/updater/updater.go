package updater

import (
	"net/http"
	"time"

	"github.com/zotplug/zotplug/internal/branding"
)

const githubAPIBase = "https://api.github.com"

// Release represents a GitHub release.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Status is the outcome of a release check.
type Status struct {
	Current         string
	Latest          string
	URL             string
	UpdateAvailable bool
}

// Checker looks up the latest release of a GitHub repository.
type Checker struct {
	currentVersion string
	repo           string
	apiBase        string
	httpClient     *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *Checker) {
		u.httpClient = c
	}
}

// WithAPIBase points the checker at another GitHub API endpoint.
func WithAPIBase(base string) Option {
	return func(u *Checker) {
		u.apiBase = base
	}
}

// New creates a Checker for the running version of the CLI's own repository.
func New(currentVersion string, opts ...Option) *Checker {
	u := &Checker{
		currentVersion: currentVersion,
		repo:           branding.GitHubRepo(),
		apiBase:        githubAPIBase,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
