package services

import (
	"sync"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
)

// Ensure PendingUpdate implements the interface.
var _ driving.PendingUpdateCell = (*PendingUpdate)(nil)

// PendingUpdate holds at most one staged application update.
// The zero value is an empty cell ready for use.
type PendingUpdate struct {
	mu   sync.Mutex
	info *domain.UpdateInfo
}

// Set stages info, replacing any previously staged update.
func (p *PendingUpdate) Set(info domain.UpdateInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.info = &info
}

// Take returns the staged update and clears the cell.
func (p *PendingUpdate) Take() (domain.UpdateInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info == nil {
		return domain.UpdateInfo{}, false
	}
	info := *p.info
	p.info = nil
	return info, true
}

// TakeOrErr is Take with domain.ErrNoPendingUpdate for an empty cell.
func (p *PendingUpdate) TakeOrErr() (domain.UpdateInfo, error) {
	info, ok := p.Take()
	if !ok {
		return domain.UpdateInfo{}, domain.ErrNoPendingUpdate
	}
	return info, nil
}

// Peek returns a copy of the staged update without clearing it.
func (p *PendingUpdate) Peek() (domain.UpdateInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info == nil {
		return domain.UpdateInfo{}, false
	}
	return *p.info, true
}
