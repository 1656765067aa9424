// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable used to override the default configuration directory.
const EnvConfigPath = "SERIESGENIUS_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the primary application configuration directory.
// It follows XDG_CONFIG_HOME on Linux and the user profile equivalents on Darwin and Windows,
// unless SERIESGENIUS_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Catalog resolves the catalog file maintained by the admin editor.
// An explicit catalog.path setting wins over the default location.
func Catalog() string {
	if custom := viper.GetString(key.CatalogPath); custom != "" {
		return custom
	}
	return filepath.Join(Config(), "catalog.json")
}

// Location resolves the file that stores the current deep-link address.
func Location() string {
	return filepath.Join(Cache(), "location.json")
}

// Queries resolves the search query suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp resolves a volatile directory for transient artifacts such as IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
