package config

import (
	"coffeeshop_server/structs"

	"github.com/MonkyMars/gecho"
)

// InitializeLogger builds the application logger for the given configuration.
func InitializeLogger(cfg *structs.Config) *gecho.Logger {
	return NewLogger(cfg, true)
}

// NewLogger creates a gecho logger at the configured level. Access logs run
// without caller information, everything else with it.
func NewLogger(cfg *structs.Config, showCaller bool) *gecho.Logger {
	level := gecho.ParseLogLevel(LogLevel(cfg))
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(showCaller), gecho.WithLogLevel(level)))
}
