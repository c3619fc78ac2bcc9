// Package inkpad is a local-first Markdown note store.
//
// It keeps notes and tags in memory as the single source of truth, mirrors
// every mutation into a key-addressed storage backend, filters with
// case-insensitive substring search plus conjunctive tag selection, and
// coordinates debounced auto-saving for an editor front end. Changes made by
// another instance sharing the same backend are observed and rehydrated.
package inkpad
