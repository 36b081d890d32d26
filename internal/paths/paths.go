package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "prefs"

// Conventional file names.
const (
	// DocumentFileName is the JSON document read from the documents directory.
	DocumentFileName = "managed-settings.json"

	// LocalStoreFileName is the per-user managed preferences file.
	LocalStoreFileName = "managed.toml"

	// ConfigFileName is the tool's own configuration file, without extension.
	ConfigFileName = "config"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// Home returns the user's home directory.
// It returns an empty string on error; use ResolveHome for error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Paths without the prefix are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding the tool's own config file.
// Returns: <ConfigHome>/prefs/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DocumentDir returns the user's documents directory.
// On Linux this honours XDG_DOCUMENTS_DIR and user-dirs.dirs.
func DocumentDir() string {
	return xdg.UserDirs.Documents
}

// DocumentPath returns the conventional location of the JSON document.
// Returns: <DocumentDir>/managed-settings.json
func DocumentPath() string {
	return filepath.Join(DocumentDir(), DocumentFileName)
}

// LocalStorePath returns the per-user managed preferences file.
// Returns: <ConfigHome>/prefs/managed.toml
func LocalStorePath() string {
	return filepath.Join(ConfigDir(), LocalStoreFileName)
}

// SharedRoot returns the system-wide directory holding shared namespaces.
// It is the first XDG config directory joined with the app name, e.g.
// /etc/xdg/prefs on Linux. Returns an empty string when no system config
// directory is known.
func SharedRoot() string {
	if len(xdg.ConfigDirs) == 0 {
		return ""
	}
	return filepath.Join(xdg.ConfigDirs[0], AppName)
}
