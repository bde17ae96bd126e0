// Package version checks GitHub for newer margin releases.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// releasesURL is a var so tests can point Check at a local server.
var releasesURL = "https://api.github.com/repos/marcus/margin/releases/latest"

// Release is the subset of the GitHub release payload we care about.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

// CheckResult holds the outcome of a version check.
type CheckResult struct {
	CurrentVersion string
	LatestVersion  string
	UpdateURL      string
	ReleaseNotes   string
	HasUpdate      bool
	Error          error
}

// isDevVersion reports whether v is a development build that should never
// trigger an update prompt (go run, untagged builds, CI snapshots).
func isDevVersion(v string) bool {
	switch v {
	case "", "dev", "unknown", "(devel)":
		return true
	}
	return strings.HasPrefix(v, "devel")
}

// Check queries GitHub for the latest release and compares it against
// currentVersion. Network or decode failures end up in CheckResult.Error;
// callers decide whether to surface or swallow them.
func Check(currentVersion string) CheckResult {
	result := CheckResult{CurrentVersion: currentVersion}

	if isDevVersion(currentVersion) {
		return result
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest(http.MethodGet, releasesURL, nil)
	if err != nil {
		result.Error = err
		return result
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("release check: unexpected status %d", resp.StatusCode)
		return result
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		result.Error = fmt.Errorf("release check: decode response: %w", err)
		return result
	}

	result.LatestVersion = release.TagName
	result.UpdateURL = release.HTMLURL
	result.ReleaseNotes = release.Body
	result.HasUpdate = newerVersion(release.TagName, currentVersion)
	return result
}

// newerVersion reports whether latest is strictly newer than current.
// Versions are compared as dotted numeric segments after stripping a leading
// "v"; non-numeric segments fall back to string comparison.
func newerVersion(latest, current string) bool {
	if latest == "" {
		return false
	}
	return compareVersions(latest, current) > 0
}

func compareVersions(a, b string) int {
	as := splitVersion(a)
	bs := splitVersion(b)

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var sa, sb string
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}
		na, errA := strconv.Atoi(sa)
		nb, errB := strconv.Atoi(sb)
		if errA == nil && errB == nil {
			if na != nb {
				if na > nb {
					return 1
				}
				return -1
			}
			continue
		}
		if sa != sb {
			if sa > sb {
				return 1
			}
			return -1
		}
	}
	return 0
}

func splitVersion(v string) []string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	// Drop pre-release/build suffixes: "1.2.3-rc1+meta" compares as "1.2.3".
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return parts
}
