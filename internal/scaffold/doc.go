// Package scaffold generates a new Python package layout from embedded
// templates. It powers the "pkgforge create" command, producing the src
// tree, packaging manifest, readme, ignore file, and optional license and
// entry-point files from one set of project settings.
package scaffold
