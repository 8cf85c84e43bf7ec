package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"covalent-hq/ladder/pkg/policy"
)

// Config configures a Git ladder source.
type Config struct {
	// Repository is the clone URL.
	Repository string

	// Branch is the branch to track.
	// Default: "main"
	Branch string

	// Path is the ladder file path inside the repository.
	// Default: "ladder.yaml"
	Path string

	// LocalPath is where the working copy lives. Empty means a directory
	// under os.TempDir.
	LocalPath string

	// PollInterval is how often to check the remote for new commits.
	// Default: 60s
	PollInterval time.Duration

	// Username and Token configure HTTP basic/token auth. Empty means
	// anonymous access.
	Username string
	Token    string
}

// DefaultConfig returns the default Git source configuration for a
// repository URL.
func DefaultConfig(repository string) *Config {
	return &Config{
		Repository:   repository,
		Branch:       "main",
		Path:         "ladder.yaml",
		PollInterval: 60 * time.Second,
	}
}

// Source loads the ladder from a Git repository and keeps it fresh by
// polling for new commits.
type Source struct {
	config *Config
	loader *policy.Loader
	logger *slog.Logger

	mu       sync.Mutex
	repo     *gogit.Repository
	lastHash plumbing.Hash
}

// NewSource creates a Git ladder source.
func NewSource(config *Config, loader *policy.Loader, logger *slog.Logger) (*Source, error) {
	if config == nil || config.Repository == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	if config.Branch == "" {
		config.Branch = "main"
	}
	if config.Path == "" {
		config.Path = "ladder.yaml"
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 60 * time.Second
	}
	if config.LocalPath == "" {
		config.LocalPath = filepath.Join(os.TempDir(), "ladder-policy-repo")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Source{
		config: config,
		loader: loader,
		logger: logger.With("component", "policy.git"),
	}, nil
}

// Load clones (or opens) the repository and loads the ladder file from the
// working tree.
func (s *Source) Load(ctx context.Context) (*policy.Ladder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureRepo(ctx); err != nil {
		return nil, err
	}
	return s.loadLocked()
}

// Watch polls the remote until the context is cancelled, invoking onChange
// with each freshly loaded ladder after a new commit touches it.
func (s *Source) Watch(ctx context.Context, onChange func(*policy.Ladder)) error {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			ladder, changed, err := s.pull(ctx)
			if err != nil {
				s.logger.Error("ladder poll failed", "error", err)
				continue
			}
			if changed {
				onChange(ladder)
			}
		}
	}
}

// pull fetches the tracked branch and reloads the ladder when the head
// moved.
func (s *Source) pull(ctx context.Context) (*policy.Ladder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureRepo(ctx); err != nil {
		return nil, false, err
	}

	wt, err := s.repo.Worktree()
	if err != nil {
		return nil, false, fmt.Errorf("opening worktree: %w", err)
	}

	err = wt.PullContext(ctx, &gogit.PullOptions{
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Auth:          s.auth(),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return nil, false, fmt.Errorf("pulling %q: %w", s.config.Repository, err)
	}

	head, err := s.repo.Head()
	if err != nil {
		return nil, false, fmt.Errorf("reading head: %w", err)
	}
	if head.Hash() == s.lastHash {
		return nil, false, nil
	}

	ladder, err := s.loadLocked()
	if err != nil {
		return nil, false, err
	}
	s.lastHash = head.Hash()

	s.logger.Info("ladder updated from git",
		"commit", head.Hash().String(),
		"levels", ladder.MaxRank(),
	)

	return ladder, true, nil
}

func (s *Source) ensureRepo(ctx context.Context) error {
	if s.repo != nil {
		return nil
	}

	if _, err := os.Stat(filepath.Join(s.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.config.LocalPath)
		if err != nil {
			return fmt.Errorf("opening existing repo: %w", err)
		}
		s.repo = repo
		return nil
	}

	if err := os.MkdirAll(s.config.LocalPath, 0o755); err != nil {
		return fmt.Errorf("creating local path: %w", err)
	}

	repo, err := gogit.PlainCloneContext(ctx, s.config.LocalPath, false, &gogit.CloneOptions{
		URL:           s.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Auth:          s.auth(),
	})
	if err != nil {
		return fmt.Errorf("cloning %q: %w", s.config.Repository, err)
	}

	s.repo = repo
	return nil
}

func (s *Source) loadLocked() (*policy.Ladder, error) {
	path := filepath.Join(s.config.LocalPath, s.config.Path)
	ladder, err := s.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if head, err := s.repo.Head(); err == nil {
		s.lastHash = head.Hash()
	}
	return ladder, nil
}

func (s *Source) auth() *githttp.BasicAuth {
	if s.config.Token == "" && s.config.Username == "" {
		return nil
	}
	username := s.config.Username
	if username == "" {
		// Token auth over HTTP wants any non-empty username.
		username = "git"
	}
	return &githttp.BasicAuth{Username: username, Password: s.config.Token}
}
