package main

import (
	"fmt"
	"os"

	"github.com/saveman/saveman/internal/app"
	"github.com/saveman/saveman/internal/config"
	"github.com/saveman/saveman/internal/logging"
	"github.com/saveman/saveman/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	payload["terminal"] = terminalDetails()
	return payload
}

type terminal struct {
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// terminalDetails records whether stdout is a terminal and its size. The
// width and height flags override the detected size at run time.
func terminalDetails() terminal {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return terminal{}
	}
	d := terminal{IsTerminal: true}
	if width, height, err := term.GetSize(fd); err == nil {
		d.Width = width
		d.Height = height
	} else {
		d.Error = err.Error()
	}
	return d
}
