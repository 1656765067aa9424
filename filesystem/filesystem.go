// Package filesystem provides a swappable filesystem backend for catalog, location and log files.
//
// Production code runs against the OS filesystem; tests switch to an in-memory afero backend.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs installs a volatile in-memory backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// SetReadOnly wraps the active backend so every write fails.
// Used to exercise restricted execution contexts.
func SetReadOnly() {
	backend = afero.Afero{Fs: afero.NewReadOnlyFs(backend.Fs)}
}
