package services

import (
	"encoding/json"

	"github.com/qualiflow/document_service/internal/dto"
)

// StatusEventHandler keeps a replica's status cache coherent with
// transitions committed on other replicas. It consumes the same
// document-status events this service publishes.
type StatusEventHandler struct {
	cache *StatusCache
}

func NewStatusEventHandler(cache *StatusCache) *StatusEventHandler {
	return &StatusEventHandler{cache: cache}
}

func (h *StatusEventHandler) HandleMessage(message string) error {
	var event dto.DocumentStatusChangedEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil || event.DocumentID == "" {
		// Unknown payload: drop everything rather than risk serving a stale
		// status.
		h.cache.InvalidateAll()
		return nil
	}
	h.cache.Invalidate(event.DocumentID)
	return nil
}
