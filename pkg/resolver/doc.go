// Package resolver resolves managed application settings from layered
// sources.
//
// A [Resolver] consults three sources in a fixed priority order:
//
//  1. the shared store, a cross-process YAML file inside a namespace
//     directory (see [SharedStore])
//  2. the local store, a per-user TOML file written by a management
//     channel (see [LocalStore])
//  3. the document store, a JSON object file loaded into memory
//     (see [DocumentStore])
//
// The first source holding a value that decodes into the requested type
// wins. A source that holds the key with an incompatible type is skipped,
// and when no source matches the caller's default is returned. Lookups
// never fail.
//
// # Typed Lookups
//
//	r := resolver.New(resolver.Options{Logger: logger})
//	timeout := r.Number("AutoLogoutTimeInterval", 3600)
//	name := r.OptionalString("BrandingName", nil)
//
// Every key in the catalogue also has a named accessor carrying its
// builtin default:
//
//	if r.ShouldHideConnectMenubar() {
//	    // ...
//	}
//
// # Provenance
//
// The Resolve* variants report which source satisfied the request:
//
//	res := r.ResolveBool(resolver.KeyEnableBetaFeatures, false)
//	fmt.Println(res.Value, res.Source, res.Found)
//
// # Concurrency
//
// A Resolver is meant to be owned by a single goroutine. It performs no
// internal locking, and [Resolver.Reload] must not race with lookups.
package resolver
