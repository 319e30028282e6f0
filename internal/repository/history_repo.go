package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vbook/vbook_go_server/internal/model"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Upsert 记录阅读位置：同一用户同一本书只保留一行，
// 冲突时覆盖章节与访问时间
func (r *HistoryRepository) Upsert(userID, bookID, chapterID int64, accessTime time.Time) error {
	history := &model.ReadingHistory{
		UserID:     userID,
		BookID:     bookID,
		ChapterID:  chapterID,
		AccessTime: accessTime,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"chapter_id", "access_time"}),
	}).Create(history).Error
}

// GetByUserAndBook 用户在某本书的阅读位置
func (r *HistoryRepository) GetByUserAndBook(userID, bookID int64) (*model.ReadingHistory, error) {
	var history model.ReadingHistory
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// ListByUser 用户的阅读历史，按最近访问倒序（每本书一条）
func (r *HistoryRepository) ListByUser(userID int64) ([]*model.ReadingHistory, error) {
	var histories []*model.ReadingHistory
	err := r.db.Preload("Book").Preload("Chapter").
		Where("user_id = ?", userID).
		Order("access_time DESC").
		Find(&histories).Error
	return histories, err
}

func (r *HistoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.ReadingHistory{}).Count(&count).Error
	return count, err
}

// BookCount 按书籍的计数行
type BookCount struct {
	BookID int64  `gorm:"column:book_id"`
	Title  string `gorm:"column:title"`
	Count  int64  `gorm:"column:count"`
}

// TopBooks 被读用户数最多的书籍，计数倒序，同数按书籍 ID 升序
func (r *HistoryRepository) TopBooks(limit int) ([]*BookCount, error) {
	var rows []*BookCount
	err := r.db.Model(&model.Book{}).
		Select("books.id AS book_id, books.title AS title, COUNT(reading_histories.id) AS count").
		Joins("LEFT JOIN reading_histories ON reading_histories.book_id = books.id").
		Group("books.id, books.title").
		Order("count DESC, books.id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
