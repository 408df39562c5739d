// Package github lists and downloads repository contents via the GitHub
// REST API. It powers the "pkgforge github-download" command, materializing
// a repository tree (or one subfolder) locally, one entry at a time, with an
// alternative sparse-checkout path that uses the local git client instead of
// the API.
package github
