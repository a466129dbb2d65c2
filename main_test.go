package main

import (
	"testing"

	"github.com/saveman/saveman/internal/app"
	"github.com/saveman/saveman/internal/config"
)

func TestTerminalDetailsSizeOnlyWhenDetected(t *testing.T) {
	info := terminalDetails()
	if !info.IsTerminal && (info.Width != 0 || info.Height != 0) {
		t.Fatalf("expected no size without a terminal, got %+v", info)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DataDir: "/tmp/saves",
			Width:   80,
			Height:  24,
			Verbose: true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"dataDir": "/tmp/saves",
			"width":   "80",
			"height":  "24",
			"verbose": "true",
		},
		Args: []string{"--data-dir", "/tmp/saves"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["dataDir"] != "/tmp/saves" {
		t.Fatalf("expected dataDir flag %q, got %v", "/tmp/saves", flagsValue["dataDir"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["terminal"].(terminal); !ok {
		t.Fatalf("expected terminal details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
