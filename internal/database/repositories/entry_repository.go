// Package repositories provides data access over the entry store.
package repositories

import (
	"context"

	"github.com/lucsky/cuid"
	"gorm.io/gorm"

	"github.com/bbernstein/irmacro-go/internal/database/models"
)

// EntryRepository is the durable key-value store the firmware persists
// through. Keys are short strings; values are bytes or 64-bit words.
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// GetWord returns the word stored under key. The second result is false
// when the key has never been written.
func (r *EntryRepository) GetWord(ctx context.Context, key string) (uint64, bool, error) {
	var entry models.Entry
	result := r.db.WithContext(ctx).First(&entry, "key = ?", key)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, result.Error
	}
	return entry.Word, true, nil
}

// GetByte returns the low byte of the word stored under key.
func (r *EntryRepository) GetByte(ctx context.Context, key string) (byte, bool, error) {
	word, ok, err := r.GetWord(ctx, key)
	return byte(word), ok, err
}

// PutWord creates or overwrites the word under key.
func (r *EntryRepository) PutWord(ctx context.Context, key string, word uint64) error {
	var entry models.Entry
	result := r.db.WithContext(ctx).First(&entry, "key = ?", key)

	if result.Error == gorm.ErrRecordNotFound {
		entry = models.Entry{
			ID:   cuid.New(),
			Key:  key,
			Word: word,
		}
		return r.db.WithContext(ctx).Create(&entry).Error
	} else if result.Error != nil {
		return result.Error
	}

	entry.Word = word
	return r.db.WithContext(ctx).Save(&entry).Error
}

// PutByte creates or overwrites the byte under key.
func (r *EntryRepository) PutByte(ctx context.Context, key string, b byte) error {
	return r.PutWord(ctx, key, uint64(b))
}

// Delete removes the value under key.
func (r *EntryRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.Entry{}, "key = ?", key).Error
}
