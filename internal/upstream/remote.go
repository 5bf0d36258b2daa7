package upstream

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
)

// DefaultRemote is the CyberChef repository.
const DefaultRemote = "https://github.com/gchq/CyberChef.git"

// OperationsSubdir is where a CyberChef checkout keeps its operation sources.
const OperationsSubdir = "src/core/operations"

var (
	sshRemotePattern = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	sshKeyPattern    = regexp.MustCompile(`^git@([^:]+):(.+)$`)
)

// RemoteInfo holds the parts of a hosted repository URL.
type RemoteInfo struct {
	Host  string
	Owner string
	Repo  string
}

// ParseRemoteURL splits an SSH (git@host:owner/repo.git) or HTTPS
// (https://host/owner/repo.git) remote into its parts.
func ParseRemoteURL(remote string) (RemoteInfo, error) {
	remote = strings.TrimSpace(remote)

	if m := sshRemotePattern.FindStringSubmatch(remote); m != nil {
		return RemoteInfo{Host: m[1], Owner: m[2], Repo: m[3]}, nil
	}

	u, err := url.Parse(remote)
	if err != nil {
		return RemoteInfo{}, fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Host == "" {
		return RemoteInfo{}, fmt.Errorf("URL missing host component")
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || strings.TrimSuffix(parts[1], ".git") == "" {
		return RemoteInfo{}, fmt.Errorf("URL path should contain owner/repo: %s", u.Path)
	}

	return RemoteInfo{
		Host:  u.Host,
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}, nil
}

// isLocalRemote reports whether remote names a repository on disk.
func isLocalRemote(remote string) bool {
	if strings.HasPrefix(remote, "file://") {
		return true
	}
	return filepath.IsAbs(remote)
}

// normalizeRemote returns the URL used for cloning. Hosted remotes are rewritten to
// HTTPS; local remotes are used as given.
func normalizeRemote(remote string) (string, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", fmt.Errorf("remote URL cannot be empty")
	}
	if isLocalRemote(remote) {
		return remote, nil
	}

	info, err := ParseRemoteURL(remote)
	if err != nil {
		return "", fmt.Errorf("invalid remote URL: %w", err)
	}
	return fmt.Sprintf("https://%s/%s/%s.git", info.Host, info.Owner, info.Repo), nil
}

// remoteKey reduces a remote URL to a form in which SSH and HTTPS spellings of the
// same repository compare equal.
func remoteKey(remote string) string {
	remote = strings.TrimSuffix(strings.TrimSpace(remote), ".git")

	if m := sshKeyPattern.FindStringSubmatch(remote); m != nil {
		return m[1] + "/" + m[2]
	}
	for _, scheme := range []string{"https://", "http://", "file://"} {
		if after, ok := strings.CutPrefix(remote, scheme); ok {
			return after
		}
	}
	return remote
}

// DefaultCheckoutPath returns where the checkout of remote is kept: a directory named
// after the repository under the user's data directory.
func DefaultCheckoutPath(remote string) (string, error) {
	var name string
	if isLocalRemote(remote) {
		p := filepath.Clean(strings.TrimPrefix(remote, "file://"))
		if filepath.Base(p) == ".git" {
			p = filepath.Dir(p)
		}
		name = strings.TrimSuffix(filepath.Base(p), ".git")
	} else {
		info, err := ParseRemoteURL(remote)
		if err != nil {
			return "", err
		}
		name = info.Repo
	}
	return filepath.Join(xdg.DataHome, "opextract", name), nil
}

func isDirEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
