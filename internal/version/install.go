package version

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// InstallMethod is how the running margin binary got onto this machine.
// It picks which upgrade instruction the update notice shows.
type InstallMethod string

const (
	InstallMethodHomebrew InstallMethod = "homebrew"
	InstallMethodGo       InstallMethod = "go"
	InstallMethodBinary   InstallMethod = "binary"
)

var (
	detectedMethod     InstallMethod
	detectedMethodOnce sync.Once
)

// DetectInstallMethod probes Homebrew, then Go bin directories, and
// falls back to a plain binary install. Detection shells out, so the
// result is computed once per process.
func DetectInstallMethod() InstallMethod {
	detectedMethodOnce.Do(func() {
		switch {
		case installedViaHomebrew():
			detectedMethod = InstallMethodHomebrew
		case runningFromGoBin():
			detectedMethod = InstallMethodGo
		default:
			detectedMethod = InstallMethodBinary
		}
	})
	return detectedMethod
}

func installedViaHomebrew() bool {
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		return false
	}
	if _, err := exec.LookPath("brew"); err != nil {
		return false
	}
	out, err := exec.Command("brew", "list", "--formula", "marcus/tap/margin").CombinedOutput()
	return err == nil && strings.TrimSpace(string(out)) != ""
}

// runningFromGoBin reports whether the executable lives in GOBIN,
// GOPATH/bin, or the default ~/go/bin.
func runningFromGoBin() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)

	if gobin := os.Getenv("GOBIN"); gobin != "" && dir == gobin {
		return true
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" && dir == filepath.Join(gopath, "bin") {
		return true
	}
	if home, err := os.UserHomeDir(); err == nil && dir == filepath.Join(home, "go", "bin") {
		return true
	}

	sep := string(filepath.Separator)
	return strings.Contains(exe, sep+"go"+sep+"bin"+sep)
}
