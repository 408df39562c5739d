package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkgforge-labs/pkgforge/internal/branding"
)

// Repository identifies one GitHub repository at one branch.
type Repository struct {
	Owner  string
	Name   string
	Branch string

	// CloneOverride, when set, is used verbatim as the clone URL in place
	// of the derived github.com one. Lets the git path target mirrors and
	// local origins the same way WithBaseURL redirects the REST client.
	CloneOverride string
}

// NewRepository builds a Repository, defaulting the branch to "main".
func NewRepository(owner, name, branch string) Repository {
	if branch == "" {
		branch = "main"
	}
	return Repository{Owner: owner, Name: name, Branch: branch}
}

// URL returns the web URL of the repository.
func (r Repository) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s", r.Owner, r.Name)
}

// CloneURL returns the URL used by the git client for this repository.
func (r Repository) CloneURL() string {
	if r.CloneOverride != "" {
		return r.CloneOverride
	}
	return r.URL() + ".git"
}

// TreeEntry is one item of a repository contents listing. Entries are
// produced by List, consumed by Download, and not retained afterwards.
type TreeEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file" or "dir"
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url"`
}

// IsDir reports whether the entry is a directory.
func (e TreeEntry) IsDir() bool { return e.Type == "dir" }

// Client calls the GitHub REST API. All calls are synchronous and blocking;
// the only concession to rate limits is an optional token header.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	progress   io.Writer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(cl *Client) { cl.baseURL = strings.TrimRight(u, "/") }
}

// WithToken sets an API token for higher rate limits.
func WithToken(token string) Option {
	return func(cl *Client) { cl.token = token }
}

// WithProgress sets a writer for per-file download progress lines.
func WithProgress(w io.Writer) Option {
	return func(cl *Client) { cl.progress = w }
}

// NewClient creates a Client. GITHUB_TOKEN is picked up from the
// environment when no explicit token is configured.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    branding.GitHubAPIBase(),
		token:      os.Getenv("GITHUB_TOKEN"),
		progress:   io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// contentsURL builds the contents-API URL for a path inside the repository.
func (c *Client) contentsURL(repo Repository, subfolder string) string {
	url := fmt.Sprintf("%s/repos/%s/%s/contents", c.baseURL, repo.Owner, repo.Name)
	if subfolder != "" {
		url += "/" + strings.Trim(subfolder, "/")
	}
	return url + "?ref=" + repo.Branch
}

// List returns the tree entries at one path of the repository. One API call
// covers exactly one directory level.
func (c *Client) List(ctx context.Context, repo Repository, subfolder string) ([]TreeEntry, error) {
	body, err := c.get(ctx, c.contentsURL(repo, subfolder))
	if err != nil {
		return nil, err
	}

	var entries []TreeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		// A single-file path returns an object instead of an array.
		var single TreeEntry
		if err2 := json.Unmarshal(body, &single); err2 == nil && single.Name != "" {
			return []TreeEntry{single}, nil
		}
		return nil, fmt.Errorf("parsing contents listing: %w", err)
	}
	return entries, nil
}

// get performs one API request and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName())
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transfer failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
