// package repositories provides scs session stores backed by SQLite and Redis.
package repositories

import (
	"fmt"
	"time"

	"github.com/desertthunder/glass/internal/shared"
)

// sqliteTimeFormat is the layout julianday() accepts for the expiry column.
const sqliteTimeFormat = "2006-01-02T15:04:05.999"

// DefaultCleanupInterval is how often expired SQLite sessions are swept.
const DefaultCleanupInterval = 5 * time.Minute

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", shared.ErrSessionStore, op, err)
}
