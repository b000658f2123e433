// File: internal/infra/proc/lock.go
package proc

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// Lock is the single-instance guard. Two bots polling the same token race
// over getUpdates, so the second process must refuse to start.
type Lock struct {
	fl   *flock.Flock
	path string
}

// Acquire takes a non-blocking exclusive lock on path and writes the pid for
// operators. A held lock returns an error naming the path.
func Acquire(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another instance holds %s", path)
	}
	// Best effort; the flock itself is the guard, the pid is a courtesy.
	_ = os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0o644)
	return &Lock{fl: fl, path: path}, nil
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() {
	_ = l.fl.Unlock()
	_ = os.Remove(l.path)
}
