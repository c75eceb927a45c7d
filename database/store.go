package database

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taxmate-backend/models"
)

// ErrNotFound is returned when a draft id does not exist in the store.
var ErrNotFound = errors.New("draft not found")

// DraftStore holds the flat, order-preserving draft collection: List is
// newest-first, Put inserts new drafts at the front and replaces existing
// ones in place, Delete is permanent.
type DraftStore interface {
	List() ([]models.InvoiceDraft, error)
	Get(id string) (models.InvoiceDraft, error)
	Put(draft models.InvoiceDraft) error
	Delete(id string) error
}

// ProfileStore holds the single Party record for the user's own business.
// A missing profile yields the zero-value template, never an error.
type ProfileStore interface {
	Profile() (models.Party, error)
	SaveProfile(p models.Party) error
}

// DraftRecord persists a draft as a JSON document. Ordering by creation
// time descending gives the newest-first list while updates (which only
// touch Data/UpdatedAt) keep a draft's position; id breaks ties between
// drafts created in the same millisecond so the order stays stable.
type DraftRecord struct {
	ID        string         `gorm:"primaryKey"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt int64          `gorm:"autoCreateTime:milli;index"`
	UpdatedAt int64          `gorm:"autoUpdateTime:milli"`
}

// ProfileRecord is a one-row table for the user's own Party.
type ProfileRecord struct {
	ID        uint           `gorm:"primaryKey"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt int64          `gorm:"autoUpdateTime:milli"`
}

// Newest first; id breaks created-at ties so the order is deterministic.
const draftListOrder = "created_at desc, id"

// GormStore implements both stores on top of GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List() ([]models.InvoiceDraft, error) {
	var records []DraftRecord
	if err := s.db.Order(draftListOrder).Find(&records).Error; err != nil {
		return nil, err
	}
	drafts := make([]models.InvoiceDraft, 0, len(records))
	for _, rec := range records {
		var d models.InvoiceDraft
		if err := json.Unmarshal(rec.Data, &d); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (s *GormStore) Get(id string) (models.InvoiceDraft, error) {
	var rec DraftRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InvoiceDraft{}, ErrNotFound
		}
		return models.InvoiceDraft{}, err
	}
	var d models.InvoiceDraft
	if err := json.Unmarshal(rec.Data, &d); err != nil {
		return models.InvoiceDraft{}, err
	}
	return d, nil
}

func (s *GormStore) Put(draft models.InvoiceDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	var existing DraftRecord
	err = s.db.First(&existing, "id = ?", draft.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&DraftRecord{ID: draft.ID, Data: data}).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&existing).Update("data", datatypes.JSON(data)).Error
}

func (s *GormStore) Delete(id string) error {
	return s.db.Delete(&DraftRecord{}, "id = ?", id).Error
}

func (s *GormStore) Profile() (models.Party, error) {
	var rec ProfileRecord
	if err := s.db.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Party{}, nil
		}
		return models.Party{}, err
	}
	var p models.Party
	if err := json.Unmarshal(rec.Data, &p); err != nil {
		return models.Party{}, err
	}
	return p, nil
}

func (s *GormStore) SaveProfile(p models.Party) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	var rec ProfileRecord
	err = s.db.First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&ProfileRecord{Data: data}).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&rec).Update("data", datatypes.JSON(data)).Error
}
