package gitutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var prURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)

// knownHosts are accepted without a scheme ("github.com/owner/repo").
var knownHosts = []string{"github.com", "gitlab.com", "bitbucket.org", "codeberg.org"}

// RepoRef identifies a remote repository.
type RepoRef struct {
	Host     string
	Owner    string
	Name     string
	CloneURL string
}

// FullName returns "owner/name".
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParsePullRequestURL parses a GitHub Pull Request URL and extracts the owner, repo, and PR number.
// Supported format: https://github.com/{owner}/{repo}/pull/{number}
func ParsePullRequestURL(url string) (owner, repo string, prNumber int, err error) {
	// Normalize URL
	url = strings.TrimSuffix(url, "/")

	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) != 4 {
		return "", "", 0, fmt.Errorf("invalid pull request URL format: %s", url)
	}

	owner = matches[1]
	repo = matches[2]
	prNumberStr := matches[3]

	prNumber, err = strconv.Atoi(prNumberStr)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid PR number '%s': %w", prNumberStr, err)
	}

	return owner, repo, prNumber, nil
}

// IsRemoteURL reports whether input names a remote repository rather than a
// local directory.
func IsRemoteURL(input string) bool {
	if strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://") {
		return true
	}
	for _, h := range knownHosts {
		if strings.HasPrefix(input, h+"/") {
			return true
		}
	}
	return false
}

// ParseRepoURL resolves a repository, tree or pull request URL to the
// repository it belongs to. A missing scheme defaults to https.
func ParseRepoURL(input string) (RepoRef, error) {
	raw := strings.TrimSpace(input)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	if owner, repo, _, err := ParsePullRequestURL(raw); err == nil {
		return newRepoRef("https", "github.com", owner, repo)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return RepoRef{}, fmt.Errorf("unable to parse repo URL %s: %w", input, err)
	}
	if u.Host == "" {
		return RepoRef{}, fmt.Errorf("unable to parse repo URL: %s", input)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("unable to parse repo URL: %s", input)
	}
	return newRepoRef(u.Scheme, u.Host, parts[0], strings.TrimSuffix(parts[1], ".git"))
}

func newRepoRef(scheme, host, owner, repo string) (RepoRef, error) {
	if strings.Contains(owner, "..") || strings.Contains(repo, "..") ||
		strings.Contains(owner, "\\") || strings.Contains(repo, "\\") {
		return RepoRef{}, fmt.Errorf("invalid owner or repo name")
	}
	return RepoRef{
		Host:     host,
		Owner:    owner,
		Name:     repo,
		CloneURL: fmt.Sprintf("%s://%s/%s/%s.git", scheme, host, owner, repo),
	}, nil
}
