// Package git reports the repository the user is working in, for display
// next to the countdown.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/xvierd/pomo/internal/ports"
)

// Detector implements the ports.GitDetector interface using go-git.
type Detector struct {
	workingDir string
}

// NewDetector creates a detector rooted at workingDir. An empty workingDir
// means the process's current directory.
func NewDetector(workingDir string) *Detector {
	return &Detector{workingDir: workingDir}
}

// Ensure Detector implements ports.GitDetector.
var _ ports.GitDetector = (*Detector)(nil)

// Detect opens the repository containing workingDir, walking up parent
// directories, and reads its branch and head commit.
func (d *Detector) Detect(ctx context.Context, workingDir string) (*ports.GitInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := d.resolve(workingDir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	branch := head.Name().Short()
	if !head.Name().IsBranch() {
		branch = "HEAD detached"
	}

	info := &ports.GitInfo{
		Branch:  branch,
		Commit:  head.Hash().String(),
		IsClean: true,
	}

	if remotes, err := repo.Remotes(); err == nil && len(remotes) > 0 {
		if urls := remotes[0].Config().URLs; len(urls) > 0 {
			info.Repository = extractRepoName(urls[0])
		}
	}

	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			info.IsClean = status.IsClean()
		}
	}

	return info, nil
}

// IsAvailable reports whether the detector's directory is inside a repository.
func (d *Detector) IsAvailable() bool {
	dir, err := d.resolve("")
	if err != nil {
		return false
	}
	_, err = git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

func (d *Detector) resolve(workingDir string) (string, error) {
	if workingDir != "" {
		return workingDir, nil
	}
	if d.workingDir != "" {
		return d.workingDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}

// Label formats repository context for a one-line header, e.g.
// "user/repo main@1a2b3c4*". The trailing star marks uncommitted changes.
func Label(info *ports.GitInfo) string {
	if info == nil {
		return ""
	}
	label := info.Branch
	if short := ShortCommit(info.Commit); short != "" {
		label += "@" + short
	}
	if !info.IsClean {
		label += "*"
	}
	if info.Repository != "" {
		label = info.Repository + " " + label
	}
	return label
}

// DetectLabel is Detect followed by Label; it returns an empty string
// outside a repository.
func DetectLabel(ctx context.Context, detector ports.GitDetector, workingDir string) string {
	if detector == nil {
		return ""
	}
	info, err := detector.Detect(ctx, workingDir)
	if err != nil {
		return ""
	}
	return Label(info)
}

// extractRepoName extracts "owner/name" from a remote URL.
func extractRepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")

	if strings.HasPrefix(url, "git@") {
		if i := strings.LastIndex(url, ":"); i >= 0 {
			return url[i+1:]
		}
	}

	if strings.HasPrefix(url, "http") {
		parts := strings.Split(url, "/")
		if len(parts) >= 2 {
			return parts[len(parts)-2] + "/" + parts[len(parts)-1]
		}
	}

	return url
}

// ShortCommit returns the first seven characters of a commit hash.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
