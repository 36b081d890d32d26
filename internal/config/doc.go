// Package config provides configuration management for the prefs CLI.
//
// This package configures the CLI itself: where the preference sources
// live and how the tool logs. It never reads managed settings; that is the
// resolver's job.
//
// # Configuration File
//
// config.yaml is searched in the current directory and then in
// ~/.config/prefs (or $PREFS_CONFIG_DIR):
//
//	version: 1
//	namespace: group.prefs.managed
//	shared_root: /etc/xdg/prefs
//	local_path: ~/.config/prefs/managed.toml
//	document_path: ~/Documents/managed-settings.json
//	log_format: text
//
// Every field can be overridden by a PREFS_-prefixed environment variable,
// e.g. PREFS_DOCUMENT_PATH.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	r := resolver.New(cfg.ResolverOptions(logger))
//
// All loaded configurations are validated automatically with [Validate].
package config
