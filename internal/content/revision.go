package content

import (
	git "github.com/go-git/go-git/v5"
)

// Revision describes the git state of the content directory, shown in the
// kiosk status bar so editors know exactly what they are previewing. The
// lookup is entirely local; no remote is ever contacted.
type Revision struct {
	Commit string
	Branch string
	Dirty  bool
	Found  bool
}

// ResolveRevision reports the commit the content directory sits on. A
// directory outside any repository simply reads as not found.
func ResolveRevision(dir string) Revision {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Revision{}
	}

	head, err := repo.Head()
	if err != nil {
		return Revision{}
	}

	rev := Revision{
		Commit: head.Hash().String()[:7],
		Found:  true,
	}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}

	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			rev.Dirty = !status.IsClean()
		}
	}

	return rev
}

// String renders the stamp, e.g. "main@1a2b3c4*" for a dirty checkout.
func (r Revision) String() string {
	if !r.Found {
		return "untracked"
	}

	stamp := r.Commit
	if r.Branch != "" {
		stamp = r.Branch + "@" + r.Commit
	}
	if r.Dirty {
		stamp += "*"
	}
	return stamp
}
