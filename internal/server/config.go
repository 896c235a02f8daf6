package server

import (
	"github.com/surajroboto/cookie-trac/internal/app"
	"github.com/surajroboto/cookie-trac/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// AppConfig configures the scanner the server runs jobs against.
	AppConfig *app.Config

	// Logger is optional; a stdout logger is created when nil.
	Logger logging.Logger
}
