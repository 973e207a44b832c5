// Package clipboard gives access to the local system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// System is the operating system clipboard.
type System struct{}

// Supported reports whether a clipboard utility is available.
func (System) Supported() bool {
	return !clipboard.Unsupported
}

// Get returns the clipboard text, or false if it could not be read.
func (System) Get() (string, bool) {
	text, err := clipboard.ReadAll()
	if err != nil {
		log.Warn().Err(err).Msg("could not get clipboard text")
		return "", false
	}
	return text, true
}

// Set replaces the clipboard text.
func (System) Set(text string) error {
	return clipboard.WriteAll(text)
}
