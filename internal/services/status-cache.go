package services

import (
	"sync"

	"github.com/qualiflow/document_service/internal/domain"
)

// StatusResolver is the read side of the approval ledger.
type StatusResolver interface {
	ResolveStatus(documentID string) (domain.ApprovalStatus, error)
}

// StatusCache is a render optimization over a StatusResolver. The ledger
// stays the single source of truth: entries are dropped on Invalidate and
// re-fetched on the next read, so a fresh read after any mutation always
// converges to the ledger's derived status.
type StatusCache struct {
	mu       sync.RWMutex
	resolver StatusResolver
	statuses map[string]domain.ApprovalStatus
}

func NewStatusCache(resolver StatusResolver) *StatusCache {
	return &StatusCache{
		resolver: resolver,
		statuses: make(map[string]domain.ApprovalStatus),
	}
}

// ResolveStatus returns the cached status or reads through to the ledger.
// Resolver errors are never cached.
func (c *StatusCache) ResolveStatus(documentID string) (domain.ApprovalStatus, error) {
	c.mu.RLock()
	status, ok := c.statuses[documentID]
	c.mu.RUnlock()
	if ok {
		return status, nil
	}

	status, err := c.resolver.ResolveStatus(documentID)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.statuses[documentID] = status
	c.mu.Unlock()
	return status, nil
}

func (c *StatusCache) Invalidate(documentID string) {
	c.mu.Lock()
	delete(c.statuses, documentID)
	c.mu.Unlock()
}

func (c *StatusCache) InvalidateAll() {
	c.mu.Lock()
	c.statuses = make(map[string]domain.ApprovalStatus)
	c.mu.Unlock()
}
