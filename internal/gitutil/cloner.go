// Package gitutil provides a client for working with Git repositories.
package gitutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/sevigo/gitdocify/internal/core"
)

// Client handles interacting with Git repositories.
type Client struct {
	Logger *slog.Logger
}

// NewClient returns a new Client instance.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{Logger: logger}
}

// Open opens the Git repository containing path. Parent directories are
// searched for a .git directory.
func (c *Client) Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return repo, nil
}

// Describe returns the HEAD commit, branch and origin URL of the checkout that
// contains path. It returns nil and no error when path is not inside a
// repository. Credentials embedded in the remote URL are removed.
func (c *Client) Describe(path string) (*core.VCSInfo, error) {
	repo, err := c.Open(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, err
	}

	info := &core.VCSInfo{}
	head, err := repo.Head()
	switch {
	case err == nil:
		info.HeadSHA = head.Hash().String()
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Freshly initialised repository without commits.
	default:
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	switch {
	case err == nil:
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.RemoteURL = redactURL(urls[0])
		}
	case errors.Is(err, git.ErrRemoteNotFound):
	default:
		return nil, fmt.Errorf("failed to read remote %q: %w", git.DefaultRemoteName, err)
	}

	return info, nil
}

// Clone makes a shallow, single-branch clone of repoURL into path. The token
// is optional and only sent over http(s).
func (c *Client) Clone(ctx context.Context, repoURL, path, token string) (*git.Repository, error) {
	if err := validateCloneURL(repoURL); err != nil {
		return nil, err
	}

	opts := &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
		Auth:         c.auth(token),
	}

	c.Logger.InfoContext(ctx, "cloning repository", "url", redactURL(repoURL), "path", path)
	repo, err := git.PlainCloneContext(ctx, path, false, opts)
	if err != nil {
		return nil, fmt.Errorf("git clone failed: %w", err)
	}
	return repo, nil
}

// CloneTemp clones repoURL into a new temporary directory and returns its
// path with a cleanup function that removes it.
func (c *Client) CloneTemp(ctx context.Context, repoURL, token string) (string, func(), error) {
	repoPath, err := os.MkdirTemp("", "gitdocify-repo-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() {
		c.Logger.Debug("cleaning up temporary repository", "path", repoPath)
		if removeErr := os.RemoveAll(repoPath); removeErr != nil {
			c.Logger.Error("failed to remove temp repo", "path", repoPath, "error", removeErr)
		}
	}

	if _, err := c.Clone(ctx, repoURL, repoPath, token); err != nil {
		cleanup()
		return "", nil, err
	}

	c.Logger.InfoContext(ctx, "repository cloned successfully", "path", repoPath)
	return repoPath, cleanup, nil
}

func (c *Client) auth(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &http.BasicAuth{Username: "x-access-token", Password: token}
}

func validateCloneURL(repoURL string) error {
	u, err := url.Parse(repoURL)
	if err != nil {
		return fmt.Errorf("failed to parse repository URL '%s': %w", repoURL, err)
	}
	// file:// is intentionally unsupported.
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("invalid repository URL: %s", repoURL)
	}
	if u.Host == "" {
		return fmt.Errorf("repository URL has no host: %s", repoURL)
	}
	return nil
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = nil
	return u.String()
}
