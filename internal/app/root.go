package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sevigo/gitdocify/internal/gitutil"
)

// ErrInvalidInput is returned when the input is neither a directory nor a
// repository URL.
var ErrInvalidInput = errors.New("input is neither a local directory nor a repository URL")

// Root is a directory ready to be analyzed.
type Root struct {
	Path string
	// Name is the project name: the repository name for remote input, the
	// directory name otherwise.
	Name string
	// Remote is set when the root was cloned.
	Remote *gitutil.RepoRef
	// Cleanup removes temporary clones. It is never nil.
	Cleanup func()
}

// PrepareRoot resolves the input (URL or path) to a local directory. Existing
// local paths win over URL-looking input; remote repositories are shallow
// cloned into a temporary directory that Cleanup removes.
func (a *App) PrepareRoot(ctx context.Context, input string) (*Root, error) {
	if input == "" {
		input = "."
	}
	if _, err := os.Stat(input); err == nil || !gitutil.IsRemoteURL(input) {
		return a.prepareLocalRoot(input)
	}
	return a.prepareRemoteRoot(ctx, input)
}

func (a *App) prepareLocalRoot(input string) (*Root, error) {
	absPath, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, absPath)
	}
	return &Root{Path: absPath, Name: filepath.Base(absPath), Cleanup: func() {}}, nil
}

func (a *App) prepareRemoteRoot(ctx context.Context, input string) (*Root, error) {
	ref, err := gitutil.ParseRepoURL(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	a.logger.Info("cloning repository", "repo", ref.FullName(), "url", ref.CloneURL)
	path, cleanup, err := a.git.CloneTemp(ctx, ref.CloneURL, a.cfg.Analysis.GitToken)
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", ref.FullName(), err)
	}
	return &Root{Path: path, Name: ref.Name, Remote: &ref, Cleanup: cleanup}, nil
}
