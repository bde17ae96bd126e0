package version

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// UpdateAvailableMsg is sent when a new margin version is available.
type UpdateAvailableMsg struct {
	CurrentVersion string
	LatestVersion  string
	UpdateCommand  string
	ReleaseNotes   string
	ReleaseURL     string
	InstallMethod  InstallMethod
}

// updateCommand generates the update command based on install method.
func updateCommand(version string, method InstallMethod) string {
	switch method {
	case InstallMethodHomebrew:
		return "brew upgrade margin"
	case InstallMethodBinary:
		return fmt.Sprintf("https://github.com/marcus/margin/releases/tag/%s", version)
	default:
		return fmt.Sprintf(
			"go install -ldflags \"-X main.Version=%s\" github.com/marcus/margin/cmd/margin@%s",
			version, version,
		)
	}
}

// CheckAsync returns a Bubble Tea command that checks for updates in
// the background. A valid cache entry short-circuits the network call.
func CheckAsync(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		method := DetectInstallMethod()

		if cached, err := LoadCache(); err == nil && IsCacheValid(cached, currentVersion) {
			if !cached.HasUpdate {
				return nil
			}
			return UpdateAvailableMsg{
				CurrentVersion: currentVersion,
				LatestVersion:  cached.LatestVersion,
				UpdateCommand:  updateCommand(cached.LatestVersion, method),
				InstallMethod:  method,
			}
		}

		return checkAndCache(currentVersion, method)
	}
}

// ForceCheckAsync checks for updates, ignoring the cache.
func ForceCheckAsync(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		return checkAndCache(currentVersion, DetectInstallMethod())
	}
}

func checkAndCache(currentVersion string, method InstallMethod) tea.Msg {
	result := Check(currentVersion)

	// Network errors are not cached; the next launch retries.
	if result.Error == nil {
		_ = SaveCache(&CacheEntry{
			LatestVersion:  result.LatestVersion,
			CurrentVersion: currentVersion,
			CheckedAt:      time.Now(),
			HasUpdate:      result.HasUpdate,
		})
	}

	if !result.HasUpdate {
		return nil
	}
	return UpdateAvailableMsg{
		CurrentVersion: currentVersion,
		LatestVersion:  result.LatestVersion,
		UpdateCommand:  updateCommand(result.LatestVersion, method),
		ReleaseNotes:   result.ReleaseNotes,
		ReleaseURL:     result.UpdateURL,
		InstallMethod:  method,
	}
}
