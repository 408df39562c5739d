// Package config manages user-level settings stored at ~/.pkgforge/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default author identity and prompt mode used by the create command.
package config
