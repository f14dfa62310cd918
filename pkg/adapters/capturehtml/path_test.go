package capturehtml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveChromePath_Explicit(t *testing.T) {
	t.Setenv(ChromePathEnv, "/env/chrome")

	if got := ResolveChromePath("/explicit/chrome"); got != "/explicit/chrome" {
		t.Errorf("expected explicit path to take precedence, got %s", got)
	}
}

func TestResolveChromePath_Env(t *testing.T) {
	t.Setenv(ChromePathEnv, "/env/chrome")

	if got := ResolveChromePath(""); got != "/env/chrome" {
		t.Errorf("expected %s to be used, got %s", ChromePathEnv, got)
	}
}

func TestChromeCandidates(t *testing.T) {
	env := map[string]string{"PROGRAMFILES": `C:\Program Files`}
	getenv := func(k string) string { return env[k] }

	win := chromeCandidates("windows", getenv)
	if len(win) != 2 || !strings.HasPrefix(win[0], `C:\Program Files\Chromium`) {
		t.Errorf("unexpected windows candidates: %v", win)
	}
	if mac := chromeCandidates("darwin", getenv); !strings.Contains(mac[0], "Chromium") {
		t.Errorf("expected Chromium first on darwin, got %v", mac)
	}
	if linux := chromeCandidates("linux", getenv); linux[0] != "chromium" {
		t.Errorf("expected chromium first on linux, got %v", linux)
	}
}

func TestFindExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := findExecutable(path); got != path {
		t.Errorf("expected %s, got %q", path, got)
	}
	if got := findExecutable(path + "-missing"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
	if got := findExecutable("definitely-not-a-browser-binary"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}
