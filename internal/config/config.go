// Package config handles cache locations and global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppDir is the directory name used under the XDG base directories.
	AppDir = "bibsync"
	// SheetCacheFile is the cached spreadsheet download.
	SheetCacheFile = "publications.xlsx"
	// DBFile is the SQLite record cache.
	DBFile = "records.db"
)

// CacheDir returns the cache directory, respecting XDG_CACHE_HOME.
func CacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		var err error
		cacheHome, err = os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locating cache directory: %w", err)
		}
	}
	return filepath.Join(cacheHome, AppDir), nil
}

// SheetCachePath returns the path of the cached spreadsheet download.
func SheetCachePath() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SheetCacheFile), nil
}

// DBPath returns the path of the SQLite record cache.
func DBPath() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFile), nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
