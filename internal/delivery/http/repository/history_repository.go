package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/lennyai/lenny-be/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryLimit caps the most-recently-studied list.
const HistoryLimit = 10

const themePreferenceKey = "theme"

type (
	HistoryRepository interface {
		// Topic history operations
		RecordStudySession(db *gorm.DB, topic, gradeLevel string) error
		LoadHistory(db *gorm.DB) ([]entity.TopicHistory, error)
		StudyCount(db *gorm.DB, topic, gradeLevel string) (int, error)

		// Preference operations
		GetTheme(db *gorm.DB) (string, error)
		SetTheme(db *gorm.DB, theme string) error
	}

	historyRepository struct {
		db *gorm.DB
	}
)

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// RecordStudySession upserts the (topic, grade level) pair: case-insensitive
// topic + exact grade level match increments the existing count and refreshes
// its recency, anything else inserts a fresh entry with count 1. The list is
// then truncated to the HistoryLimit most recent entries.
func (r *historyRepository) RecordStudySession(db *gorm.DB, topic, gradeLevel string) error {
	if db == nil {
		db = r.db
	}

	key := strings.ToLower(strings.TrimSpace(topic))
	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		var item entity.TopicHistory
		err := tx.Where("topic_key = ? AND grade_level = ?", key, gradeLevel).First(&item).Error
		switch {
		case err == nil:
			item.Count++
			item.LastStudiedAt = now
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = entity.TopicHistory{
				Topic:         strings.TrimSpace(topic),
				TopicKey:      key,
				GradeLevel:    gradeLevel,
				Count:         1,
				LastStudiedAt: now,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// Drop everything beyond the HistoryLimit most recent entries.
		var keep []uint
		if err := tx.Model(&entity.TopicHistory{}).
			Order("last_studied_at DESC").
			Limit(HistoryLimit).
			Pluck("id", &keep).Error; err != nil {
			return err
		}
		return tx.Where("id NOT IN ?", keep).Delete(&entity.TopicHistory{}).Error
	})
}

// LoadHistory returns the list in most-recently-studied order. Entries
// persisted by older builds without a count load as count 1.
func (r *historyRepository) LoadHistory(db *gorm.DB) ([]entity.TopicHistory, error) {
	if db == nil {
		db = r.db
	}

	var items []entity.TopicHistory
	err := db.Order("last_studied_at DESC").Limit(HistoryLimit).Find(&items).Error
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Count < 1 {
			items[i].Count = 1
		}
	}
	return items, nil
}

// StudyCount resolves the display count for a pair using the same key as
// RecordStudySession. A missing entry reads as 1.
func (r *historyRepository) StudyCount(db *gorm.DB, topic, gradeLevel string) (int, error) {
	if db == nil {
		db = r.db
	}

	key := strings.ToLower(strings.TrimSpace(topic))

	var item entity.TopicHistory
	err := db.Where("topic_key = ? AND grade_level = ?", key, gradeLevel).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 1, err
	}
	if item.Count < 1 {
		return 1, nil
	}
	return item.Count, nil
}

// GetTheme returns the persisted theme, defaulting to light when absent.
func (r *historyRepository) GetTheme(db *gorm.DB) (string, error) {
	if db == nil {
		db = r.db
	}

	var pref entity.Preference
	err := db.Where("key = ?", themePreferenceKey).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "light", nil
	}
	if err != nil {
		return "light", err
	}
	if pref.Value != "light" && pref.Value != "dark" {
		return "light", nil
	}
	return pref.Value, nil
}

func (r *historyRepository) SetTheme(db *gorm.DB, theme string) error {
	if db == nil {
		db = r.db
	}

	pref := entity.Preference{Key: themePreferenceKey, Value: theme}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}
