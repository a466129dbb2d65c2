package config

import "testing"

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs(
		[]string{"-data-dir", "/flag/saves", "-width", "100", "-trace"},
		[]string{"SAVEMAN_DATA_DIR=/env/saves", "SAVEMAN_HEIGHT=24", "SAVEMAN_VERBOSE=1"},
	)
	if err != nil {
		t.Fatalf("load args: %v", err)
	}
	if cfg.App.DataDir != "/flag/saves" {
		t.Fatalf("expected flag to win, got %q", cfg.App.DataDir)
	}
	if cfg.App.Width != 100 {
		t.Fatalf("expected width 100, got %d", cfg.App.Width)
	}
	if cfg.App.Height != 24 {
		t.Fatalf("expected env height 24, got %d", cfg.App.Height)
	}
	if !cfg.Logging.Trace {
		t.Fatal("expected trace enabled")
	}
	if !cfg.Features.Verbose {
		t.Fatal("expected env verbose to apply")
	}
}

func TestLoadArgsRejectsNegativeDimensions(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatal("expected an error for negative width")
	}
	if _, err := LoadArgs([]string{"-height", "-2"}, nil); err == nil {
		t.Fatal("expected an error for negative height")
	}
}

func TestLoadArgsIgnoresMalformedEnvValues(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"SAVEMAN_WIDTH=abc", "SAVEMAN_TRACE=maybe"})
	if err != nil {
		t.Fatalf("load args: %v", err)
	}
	if cfg.App.Width != 0 {
		t.Fatalf("expected malformed width to fall back to 0, got %d", cfg.App.Width)
	}
	if cfg.Logging.Trace {
		t.Fatal("expected malformed trace to fall back to false")
	}
}
