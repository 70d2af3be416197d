package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

const (
	statsFileName    = "global_stats.json"
	recentFileName   = "recent.yaml"
	commentsFileName = "comments.yaml"
	configFileName   = "config.yaml"
	sessionsDirName  = "sessions"
)

// DataPaths holds the on-disk layout of a data directory
type DataPaths struct {
	BasePath string // data directory root
	Sessions string // one CSV table per session
}

// DetectDataDir returns the default data directory for the current user.
// STYX_SESSION_HOME overrides it.
func DetectDataDir() (string, error) {
	if dir := os.Getenv("STYX_SESSION_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "styx-session"), nil
		}
		return filepath.Join(home, "styx-session"), nil
	default:
		return filepath.Join(home, ".styx-session"), nil
	}
}

// NewDataPaths lays out a data directory rooted at base
func NewDataPaths(base string) DataPaths {
	return DataPaths{
		BasePath: base,
		Sessions: filepath.Join(base, sessionsDirName),
	}
}

// StatsPath returns the path of the aggregate record
func (dp DataPaths) StatsPath() string {
	return filepath.Join(dp.BasePath, statsFileName)
}

// RecentPath returns the path of the recent-sessions index
func (dp DataPaths) RecentPath() string {
	return filepath.Join(dp.BasePath, recentFileName)
}

// CommentsPath returns the path of the comments record
func (dp DataPaths) CommentsPath() string {
	return filepath.Join(dp.BasePath, commentsFileName)
}

// ConfigPath returns the path of the optional configuration file
func (dp DataPaths) ConfigPath() string {
	return filepath.Join(dp.BasePath, configFileName)
}

// SessionPath returns the table path of a session id
func (dp DataPaths) SessionPath(id string) string {
	return filepath.Join(dp.Sessions, id)
}

// SessionExists checks whether the table of a session id is on disk
func (dp DataPaths) SessionExists(id string) bool {
	if !ValidSessionID(id) {
		return false
	}
	info, err := os.Stat(dp.SessionPath(id))
	return err == nil && !info.IsDir()
}

// FindSessionFiles lists the session ids present on disk, sorted by name
// (and therefore by start instant).
func (dp DataPaths) FindSessionFiles() ([]string, error) {
	entries, err := os.ReadDir(dp.Sessions)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Path: dp.Sessions, Op: "list", Err: err}
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !ValidSessionID(name) {
			continue
		}
		ids = append(ids, name)
	}
	sort.Strings(ids)
	return ids, nil
}
