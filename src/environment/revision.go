package environment

import (
	"github.com/go-git/go-git/v5"
)

// Revision returns the code revision of the project at root, preferring
// the ALTIS_REVISION environment variable (set by deploy tooling) and
// falling back to the git HEAD commit hash.
//
// Resolution is best-effort: when root is not a repository, or HEAD cannot
// be resolved (fresh repository, corrupt ref), the revision is simply
// unknown and an empty string is returned.
func Revision(root string) string {
	if rev := Current().Revision; rev != "" {
		return rev
	}

	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		log.Debug().Str("root", root).Err(err).Msg("not a git repository, revision unknown")
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		log.Debug().Str("root", root).Err(err).Msg("could not resolve HEAD, revision unknown")
		return ""
	}

	return head.Hash().String()
}
