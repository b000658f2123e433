// File: internal/usecase/proof_watcher.go
package usecase

import (
	"sync"
	"time"

	"vaultvpn-bot/internal/domain"
)

// ProofWatcher tracks which chats are expected to send a payment screenshot
// and until when. Registration is keyed by chat, so pressing "upload proof"
// twice replaces the previous watch instead of stacking a second one: one
// photo produces at most one admin notification.
type ProofWatcher struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	watches map[int64]proofWatch
}

type proofWatch struct {
	paymentID string
	deadline  time.Time
}

func NewProofWatcher(window time.Duration) *ProofWatcher {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &ProofWatcher{
		window:  window,
		now:     time.Now,
		watches: make(map[int64]proofWatch),
	}
}

// Register arms (or re-arms) the watch for chatID. The deadline restarts on
// every press.
func (w *ProofWatcher) Register(chatID int64, paymentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watches[chatID] = proofWatch{
		paymentID: paymentID,
		deadline:  w.now().Add(w.window),
	}
}

// Take consumes the watch for chatID. A photo arriving with no armed watch
// returns ErrNotFound; one arriving past the deadline returns
// ErrProofWindowClosed and discards the watch silently.
func (w *ProofWatcher) Take(chatID int64) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	watch, ok := w.watches[chatID]
	if !ok {
		return "", domain.ErrNotFound
	}
	delete(w.watches, chatID)
	if w.now().After(watch.deadline) {
		return "", domain.ErrProofWindowClosed
	}
	return watch.paymentID, nil
}

// Cancel drops the watch for chatID if it references paymentID.
func (w *ProofWatcher) Cancel(chatID int64, paymentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if watch, ok := w.watches[chatID]; ok && watch.paymentID == paymentID {
		delete(w.watches, chatID)
	}
}

func (w *ProofWatcher) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watches)
}
