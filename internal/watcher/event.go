package watcher

import (
	"fmt"

	"github.com/saveman/saveman/internal/fsutil"
)

// Tier identifies which level of the registry an event touches, derived
// from how deep the path sits below the data directory.
type Tier int

const (
	TierGame Tier = iota
	TierProfile
	TierEntry
)

func (t Tier) String() string {
	switch t {
	case TierGame:
		return "game"
	case TierProfile:
		return "profile"
	case TierEntry:
		return "entry"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Kind is the reconciliation action an event asks for.
type Kind int

const (
	KindCreate Kind = iota
	KindRename
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindRename:
		return "rename"
	case KindDelete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one classified filesystem change under the data directory.
// NewPath is set for renames only. Err carries a backend failure; when it
// is non-nil the other fields are zero.
type Event struct {
	Tier    Tier
	Kind    Kind
	Path    string
	NewPath string
	Err     error
}

// Classify places a path below root at its registry tier: direct children
// are games, grandchildren are profiles, anything deeper belongs to an
// entry subtree. Paths outside root, or with an ignored component, are not
// registry paths at all.
func Classify(root, path string) (Tier, bool) {
	comps, ok := fsutil.RelComponents(root, path)
	if !ok {
		return 0, false
	}
	for _, c := range comps {
		if fsutil.Ignored(c) {
			return 0, false
		}
	}
	switch len(comps) {
	case 1:
		return TierGame, true
	case 2:
		return TierProfile, true
	default:
		return TierEntry, true
	}
}
