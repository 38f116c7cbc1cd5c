package driving

import "github.com/custodia-labs/boothcache/internal/core/domain"

// PendingUpdateCell holds at most one staged application update.
type PendingUpdateCell interface {
	// Set stages info, replacing any previous update.
	Set(info domain.UpdateInfo)

	// TakeOrErr returns and clears the staged update.
	// Returns domain.ErrNoPendingUpdate when nothing is staged.
	TakeOrErr() (domain.UpdateInfo, error)

	// Peek returns the staged update without clearing it.
	Peek() (domain.UpdateInfo, bool)
}
