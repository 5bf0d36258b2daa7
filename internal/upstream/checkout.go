package upstream

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"github.com/go-git/go-git/v6/plumbing/transport/http"

	"github.com/christianwengert/mcp-cyberchef/internal/logging"
)

// ErrDirectoryConflict is returned when the checkout directory holds something other
// than a clone of the configured remote.
var ErrDirectoryConflict = errors.New("checkout directory conflict")

type dirState int

const (
	dirEmpty dirState = iota
	dirSameRemote
	dirOtherRemote
	dirNotRepository
)

func (s dirState) String() string {
	switch s {
	case dirEmpty:
		return "empty or missing"
	case dirSameRemote:
		return "clone of the same remote"
	case dirOtherRemote:
		return "clone of a different remote"
	case dirNotRepository:
		return "not a git repository"
	default:
		return "unknown"
	}
}

// TokenSource supplies the access token for private remotes. An empty token means
// none is configured.
type TokenSource interface {
	Token() (string, error)
}

// Checkout is a local clone of a remote repository.
type Checkout struct {
	// RemoteURL is the repository to clone. SSH remotes are fetched over HTTPS.
	RemoteURL string
	// Branch selects the branch to follow; empty follows the remote's default.
	Branch string
	// Path is the local clone directory.
	Path string
	// Tokens supplies credentials when the remote requires them. It may be nil.
	Tokens TokenSource
}

// Prepare clones or updates the checkout and returns its absolute path. logger must
// not be nil.
func (c Checkout) Prepare(logger *logging.AppLogger) (string, error) {
	remote, err := normalizeRemote(c.RemoteURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(c.Path) == "" {
		return "", fmt.Errorf("checkout path cannot be empty")
	}
	path, err := filepath.Abs(c.Path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve checkout path: %w", err)
	}

	logger.Info("Preparing checkout", "remote", remote, "branch", c.Branch, "path", path)

	state, err := c.state(path, remote)
	if err != nil {
		return "", err
	}

	switch state {
	case dirEmpty:
		err = c.withAuth(logger, func(auth transport.AuthMethod) error {
			return c.clone(path, remote, auth, logger)
		})
	case dirSameRemote:
		err = c.withAuth(logger, func(auth transport.AuthMethod) error {
			return c.update(path, auth, logger)
		})
	default:
		err = fmt.Errorf("%w at %s (%s): remove or relocate the directory", ErrDirectoryConflict, path, state)
	}
	if err != nil {
		return "", err
	}

	return path, nil
}

func (c Checkout) state(path, remote string) (dirState, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return dirEmpty, nil
	}
	if err != nil {
		return dirEmpty, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		return dirNotRepository, nil
	}

	empty, err := isDirEmpty(path)
	if err != nil {
		return dirEmpty, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if empty {
		return dirEmpty, nil
	}

	origin, err := originURL(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return dirNotRepository, nil
	}
	if err != nil {
		return dirEmpty, err
	}

	if remoteKey(origin) != remoteKey(remote) {
		return dirOtherRemote, nil
	}
	return dirSameRemote, nil
}

// withAuth runs op anonymously and retries with the stored token when the remote
// rejects anonymous access.
func (c Checkout) withAuth(logger *logging.AppLogger, op func(transport.AuthMethod) error) error {
	err := op(nil)
	if err == nil || !isAuthError(err) {
		return err
	}

	logger.Debug("Anonymous access rejected, retrying with token")

	if c.Tokens == nil {
		return fmt.Errorf("remote requires authentication: %w", err)
	}
	token, terr := c.Tokens.Token()
	if terr != nil {
		return terr
	}
	if token == "" {
		return fmt.Errorf("remote requires authentication: store a token with `opextract token set` or set %s", TokenEnv)
	}

	return op(&http.BasicAuth{Username: "token", Password: token})
}

func (c Checkout) clone(path, remote string, auth transport.AuthMethod, logger *logging.AppLogger) error {
	logger.Info("Cloning repository", "remote", remote, "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	opts := &git.CloneOptions{URL: remote, Auth: auth}
	if !isLocalRemote(remote) {
		opts.Depth = 1
	}
	if c.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(c.Branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainClone(path, opts); err != nil {
		return fmt.Errorf("failed to clone %s: %w", remote, err)
	}
	return nil
}

// update fetches origin and resets the working tree to the followed branch. A dirty
// working tree is kept as it is.
func (c Checkout) update(path string, auth transport.AuthMethod, logger *logging.AppLogger) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open checkout: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get working tree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get working tree status: %w", err)
	}
	if !status.IsClean() {
		logger.Warn("Checkout has local changes, skipping update", "path", path)
		return nil
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("failed to get origin remote: %w", err)
	}
	err = remote.Fetch(&git.FetchOptions{Auth: auth, Force: true})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		logger.Debug("Checkout already up to date", "path", path)
	} else if err != nil {
		return fmt.Errorf("failed to fetch updates: %w", err)
	}

	branch := c.Branch
	if branch == "" {
		head, err := repo.Head()
		if err != nil {
			return fmt.Errorf("failed to read HEAD: %w", err)
		}
		branch = head.Name().Short()
	}

	target, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return fmt.Errorf("branch %q does not exist on origin: %w", branch, err)
	}

	local := plumbing.NewBranchReferenceName(branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(local, target.Hash())); err != nil {
		return fmt.Errorf("failed to update branch %q: %w", branch, err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Branch: local, Force: true}); err != nil {
		return fmt.Errorf("failed to check out %q: %w", branch, err)
	}

	logger.Info("Checkout updated", "branch", branch, "commit", target.Hash().String())
	return nil
}

func originURL(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("cannot get origin remote: %w", err)
	}
	cfg := remote.Config()
	if cfg == nil || len(cfg.URLs) == 0 {
		return "", fmt.Errorf("no URLs configured for origin remote")
	}
	return cfg.URLs[0], nil
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"authentication required", "401", "unauthorized", "403", "forbidden"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
