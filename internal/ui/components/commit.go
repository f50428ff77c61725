package components

import "time"

// CommittedMsg is emitted by any view after a write to the progress record.
// SyncFor is how long the status bar shows its syncing indicator.
type CommittedMsg struct {
	Label     string
	SyncFor   time.Duration
	NewBadges []string
	Err       error
}
