// Package paths resolves the conventional locations of the preference
// sources.
//
// The package wraps github.com/adrg/xdg so the same layout works on Linux,
// macOS and Windows:
//
//	| Source    | Location                                     |
//	|-----------|----------------------------------------------|
//	| shared    | <first XDG config dir>/prefs/<namespace>/    |
//	| local     | <XDG config home>/prefs/managed.toml         |
//	| document  | <user documents dir>/managed-settings.json   |
//
// Every location can be overridden through the tool's configuration file
// or per call; these functions only supply the defaults.
package paths
