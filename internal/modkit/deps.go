// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// HTTP is the shared outbound client; nil means http.DefaultClient
	HTTP *http.Client
}

// Client returns the outbound HTTP client, falling back to the default
func (d Deps) Client() *http.Client {
	if d.HTTP != nil {
		return d.HTTP
	}
	return http.DefaultClient
}

// ZeroOK returns true when deps are safe to use with zero values in tests
func (d Deps) ZeroOK() bool { return true }
