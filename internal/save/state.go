package save

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/saveman/saveman/internal/entry"
	"github.com/saveman/saveman/internal/fsutil"
)

// GameState is the bookkeeping file at a game directory's root.
type GameState struct {
	ActiveProfile string `json:"active_profile,omitempty"`
	SavefilePath  string `json:"savefile_path,omitempty"`
}

// ProfileState is the bookkeeping file at a profile directory's root. The
// active save file and skeleton names are relative to the profile directory
// so the whole tree can be moved without breaking them.
type ProfileState struct {
	ActiveSaveFile string           `json:"active_save_file,omitempty"`
	Entries        []entry.Skeleton `json:"entries,omitempty"`
}

// readState decodes dir's bookkeeping file into out. A missing or mangled
// file leaves out at its zero value; ordering and the active marker are
// conveniences, not ground truth.
func readState(dir string, out any) {
	data, err := os.ReadFile(filepath.Join(dir, fsutil.StateFile))
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, out)
}

func writeState(dir string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteAtomic(filepath.Join(dir, fsutil.StateFile), data)
}
