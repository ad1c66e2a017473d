package api

import (
	"net/http"
	"time"

	"github.com/electrostorehq/backend/pkg/config"
)

// NewServer wraps the router in an http.Server with sane timeouts. Image
// uploads can be slow on mobile connections, hence the generous write window.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
