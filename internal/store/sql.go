package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/dishcovery/backend/internal/model"
)

// SQLStore keeps slots in the slots table. Change events are only
// delivered within this process.
type SQLStore struct {
	db     *gorm.DB
	events *broadcaster
}

// NewSQLStore creates a SQLStore. The slots table must already exist.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db, events: newBroadcaster()}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var slot model.Slot
	res := s.db.WithContext(ctx).Where("slot_key = ?", key).Limit(1).Find(&slot)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get slot %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return slot.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	slot := model.Slot{SlotKey: key, Value: append([]byte{}, value...), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	s.events.publish(Event{Key: key})
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&model.Slot{}).Error; err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	s.events.publish(Event{Key: key})
	return nil
}

func (s *SQLStore) Subscribe(ctx context.Context) (<-chan Event, error) {
	return s.events.subscribe(ctx), nil
}
