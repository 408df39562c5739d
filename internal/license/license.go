// Package license fetches open-source license texts from a remote catalog.
// The catalog is the choosealicense.com repository served through the GitHub
// contents API; each entry is a markdown file whose YAML front matter is
// stripped before the text is handed to the scaffold.
package license

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/pkgforge-labs/pkgforge/internal/branding"
)

// ErrUnknownLicense is returned when an identifier is not in the catalog.
var ErrUnknownLicense = errors.New("unknown license identifier")

// frontMatterSeparator splits the catalog's YAML header from the text body.
const frontMatterSeparator = "\n---\n"

// Client fetches the license catalog and individual license texts.
type Client struct {
	httpClient *http.Client
	catalogURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithCatalogURL overrides the catalog listing URL (useful for testing).
func WithCatalogURL(u string) Option {
	return func(cl *Client) { cl.catalogURL = u }
}

// NewClient creates a Client pointed at the default catalog.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		catalogURL: branding.LicenseCatalogURL(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// catalogEntry is one item of the catalog's contents listing.
type catalogEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Available returns a map of license identifier to download URL. Listing
// never fetches any license text.
func (c *Client) Available(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, c.catalogURL)
	if err != nil {
		return nil, fmt.Errorf("fetching license catalog: %w", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parsing license catalog: %w", err)
	}

	licenses := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.Type != "file" {
			continue
		}
		id := strings.TrimSuffix(entry.Name, path.Ext(entry.Name))
		licenses[id] = entry.DownloadURL
	}
	return licenses, nil
}

// Identifiers returns the sorted identifiers of all available licenses.
func (c *Client) Identifiers(ctx context.Context) ([]string, error) {
	licenses, err := c.Available(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(licenses))
	for id := range licenses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Fetch downloads the full text of one license by identifier.
func (c *Client) Fetch(ctx context.Context, id string) (string, error) {
	licenses, err := c.Available(ctx)
	if err != nil {
		return "", err
	}

	downloadURL, ok := licenses[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLicense, id)
	}

	body, err := c.get(ctx, downloadURL)
	if err != nil {
		return "", fmt.Errorf("fetching license %q: %w", id, err)
	}

	return stripFrontMatter(string(body)), nil
}

// stripFrontMatter removes the catalog's YAML header, if present.
func stripFrontMatter(text string) string {
	if _, rest, ok := strings.Cut(text, frontMatterSeparator); ok {
		return strings.TrimLeft(rest, "\n")
	}
	return text
}

// get performs one catalog request and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
