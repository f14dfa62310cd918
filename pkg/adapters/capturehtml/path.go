package capturehtml

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ChromePathEnv names the environment variable consulted by ResolveChromePath.
const ChromePathEnv = "CHROME_PATH"

// ResolveChromePath returns explicit if set, then $CHROME_PATH, then the
// first installed Chromium or Chrome. An empty result leaves the lookup to
// chromedp.
func ResolveChromePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ChromePathEnv); env != "" {
		return env
	}
	for _, candidate := range chromeCandidates(runtime.GOOS, os.Getenv) {
		if path := findExecutable(candidate); path != "" {
			return path
		}
	}
	return ""
}

// chromeCandidates lists browser locations for goos, Chromium first.
func chromeCandidates(goos string, getenv func(string) string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		}
	case "windows":
		var out []string
		for _, root := range []string{getenv("PROGRAMFILES"), getenv("PROGRAMFILES(X86)"), getenv("LOCALAPPDATA")} {
			if root == "" {
				continue
			}
			out = append(out,
				root+`\Chromium\Application\chrome.exe`,
				root+`\Google\Chrome\Application\chrome.exe`,
			)
		}
		return out
	default:
		return []string{"chromium", "chromium-browser", "google-chrome-stable", "google-chrome"}
	}
}

// findExecutable stats absolute paths and searches PATH for bare names.
func findExecutable(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) || filepath.VolumeName(nameOrPath) != "" {
		if _, err := os.Stat(nameOrPath); err == nil {
			return nameOrPath
		}
		return ""
	}
	if path, err := exec.LookPath(nameOrPath); err == nil {
		return path
	}
	return ""
}
