package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkgforge-labs/pkgforge/internal/branding"
)

// Download materializes the repository contents at subfolder into destDir.
// Files are fetched one at a time in listing order; directory entries are
// descended into when recursive is set and skipped otherwise.
//
// A failure aborts the walk and leaves already-written files on disk; there
// is no transactional guarantee and no rollback.
func (c *Client) Download(ctx context.Context, repo Repository, subfolder, destDir string, recursive bool) error {
	entries, err := c.List(ctx, repo, subfolder)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination %s: %w", destDir, err)
	}

	for _, entry := range entries {
		// Entry names come from the server; anything that is not a plain
		// file name must not reach filepath.Join.
		if entry.Name == "" || entry.Name == "." || entry.Name == ".." ||
			strings.ContainsAny(entry.Name, `/\`) {
			return fmt.Errorf("invalid entry name %q in listing", entry.Name)
		}
		switch {
		case entry.IsDir() && recursive:
			sub := entry.Name
			if subfolder != "" {
				sub = subfolder + "/" + entry.Name
			}
			if err := c.Download(ctx, repo, sub, filepath.Join(destDir, entry.Name), recursive); err != nil {
				return err
			}
		case entry.IsDir():
			// Non-recursive mode downloads only the immediate level's files.
		default:
			fmt.Fprintf(c.progress, "Downloading %s...\n", entry.Path)
			if err := c.downloadFile(ctx, entry, filepath.Join(destDir, entry.Name)); err != nil {
				return fmt.Errorf("downloading %s: %w", entry.Path, err)
			}
		}
	}
	return nil
}

// downloadFile streams one file entry's content to a local path.
func (c *Client) downloadFile(ctx context.Context, entry TreeEntry, destPath string) error {
	if entry.DownloadURL == "" {
		return fmt.Errorf("entry has no download URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.DownloadURL, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
