package watcher

import (
	"runtime"
	"sync"
	"time"
)

// renamePairGrace is how long a lone rename-from notification may wait for
// its matching create before it is treated as a deletion.
const renamePairGrace = 100 * time.Millisecond

// sinkFunc receives one reconciliation action. newPath is empty except for
// renames.
type sinkFunc func(kind Kind, path, newPath string)

// renameBackend translates raw notifications into reconciliation actions.
// The hard part is renames: inotify and its cousins report them as a
// rename-from on the old path followed by a create on the new one, so a
// pairing backend has to hold the old path until the other half shows up.
type renameBackend interface {
	create(path string)
	renameFrom(path string)
	remove(path string)
	// close flushes or cancels any pending state. No sink calls are made
	// for cancelled pairs.
	close()
}

// newRenameBackend picks the pairing strategy for the running platform.
// Linux and Windows deliver the two rename halves strictly in order, so
// pairing is safe there. The kqueue platforms give no such ordering, and a
// rename shows up well enough as delete-then-create. pairable vetoes
// implausible pairs; fsnotify drops the cookie that would match halves
// exactly.
func newRenameBackend(sink sinkFunc, wg *sync.WaitGroup, pairable func(old, new string) bool) renameBackend {
	switch runtime.GOOS {
	case "linux", "windows":
		return &pairingBackend{sink: sink, wg: wg, grace: renamePairGrace, pairable: pairable}
	default:
		return &passthroughBackend{sink: sink}
	}
}

// pairingBackend matches a rename-from with the next pairable create. A
// lone rename-from decays into a delete after the grace interval, covering
// moves out of the watched subtree.
type pairingBackend struct {
	sink     sinkFunc
	wg       *sync.WaitGroup
	grace    time.Duration
	pairable func(old, new string) bool

	mu      sync.Mutex
	pending string
	timer   *time.Timer
}

func (b *pairingBackend) create(path string) {
	b.mu.Lock()
	old := b.pending
	if old != "" && b.pairable(old, path) {
		b.disarmLocked()
	} else {
		// an unrelated create; the pending half keeps waiting for its
		// timer
		old = ""
	}
	b.mu.Unlock()

	if old != "" {
		b.sink(KindRename, old, path)
		return
	}
	b.sink(KindCreate, path, "")
}

func (b *pairingBackend) renameFrom(path string) {
	b.mu.Lock()
	stale := b.pending
	if stale != "" {
		b.disarmLocked()
	}
	b.pending = path
	b.wg.Add(1)
	b.timer = time.AfterFunc(b.grace, func() { b.expire(path) })
	b.mu.Unlock()

	// a second rename arrived before the first resolved; its old path is
	// gone for good
	if stale != "" {
		b.sink(KindDelete, stale, "")
	}
}

func (b *pairingBackend) remove(path string) {
	b.sink(KindDelete, path, "")
}

func (b *pairingBackend) close() {
	b.mu.Lock()
	if b.pending != "" {
		b.disarmLocked()
	}
	b.mu.Unlock()
}

// disarmLocked cancels the pending pair. When the timer was stopped in
// time its goroutine never runs, so the waitgroup slot is released here.
func (b *pairingBackend) disarmLocked() {
	b.pending = ""
	if b.timer.Stop() {
		b.wg.Done()
	}
}

func (b *pairingBackend) expire(path string) {
	defer b.wg.Done()
	b.mu.Lock()
	if b.pending != path {
		b.mu.Unlock()
		return
	}
	b.pending = ""
	b.mu.Unlock()
	b.sink(KindDelete, path, "")
}

// passthroughBackend maps every notification straight through. Without
// ordered rename halves a rename-from is just a disappearance.
type passthroughBackend struct {
	sink sinkFunc
}

func (b *passthroughBackend) create(path string)     { b.sink(KindCreate, path, "") }
func (b *passthroughBackend) renameFrom(path string) { b.sink(KindDelete, path, "") }
func (b *passthroughBackend) remove(path string)     { b.sink(KindDelete, path, "") }
func (b *passthroughBackend) close()                 {}
