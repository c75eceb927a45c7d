package database

import (
	"sync"

	"taxmate-backend/models"
)

// MemoryStore keeps drafts and the profile in process memory. It backs unit
// tests and DB-less development, and its semantics are the contract the
// GORM store must match: new drafts prepend, updates replace in place,
// deletes filter out, the profile defaults to an empty template.
type MemoryStore struct {
	mu      sync.Mutex
	drafts  []models.InvoiceDraft
	profile models.Party
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: []models.InvoiceDraft{}}
}

// cloneDraft detaches a draft's slices so callers never share a backing
// array with the stored value. Edits only become visible through Put —
// whole-value replacement, no in-place mutation of store state.
func cloneDraft(d models.InvoiceDraft) models.InvoiceDraft {
	if d.Items != nil {
		items := make([]models.LineItem, len(d.Items))
		copy(items, d.Items)
		d.Items = items
	}
	if d.Warnings != nil {
		warnings := make([]models.Warning, len(d.Warnings))
		copy(warnings, d.Warnings)
		d.Warnings = warnings
	}
	return d
}

func (s *MemoryStore) List() ([]models.InvoiceDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.InvoiceDraft, 0, len(s.drafts))
	for _, d := range s.drafts {
		out = append(out, cloneDraft(d))
	}
	return out, nil
}

func (s *MemoryStore) Get(id string) (models.InvoiceDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drafts {
		if d.ID == id {
			return cloneDraft(d), nil
		}
	}
	return models.InvoiceDraft{}, ErrNotFound
}

func (s *MemoryStore) Put(draft models.InvoiceDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft = cloneDraft(draft)
	for i, d := range s.drafts {
		if d.ID == draft.ID {
			s.drafts[i] = draft
			return nil
		}
	}
	s.drafts = append([]models.InvoiceDraft{draft}, s.drafts...)
	return nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.drafts[:0]
	for _, d := range s.drafts {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.drafts = kept
	return nil
}

func (s *MemoryStore) Profile() (models.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *MemoryStore) SaveProfile(p models.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	return nil
}
