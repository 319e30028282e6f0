package model

import (
	"time"
)

// ReadingHistory 阅读进度记录，每个用户每本书只保留最近读到的章节
type ReadingHistory struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_user_book_history" json:"user_id"`
	BookID     int64     `gorm:"not null;uniqueIndex:idx_user_book_history" json:"book_id"`
	ChapterID  int64     `gorm:"not null" json:"chapter_id"`
	AccessTime time.Time `gorm:"not null;index" json:"access_time"`

	Book    *Book    `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Chapter *Chapter `gorm:"foreignKey:ChapterID" json:"chapter,omitempty"`
}

func (ReadingHistory) TableName() string {
	return "reading_histories"
}
