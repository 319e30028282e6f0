package model

import (
	"time"
)

type Chapter struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	BookID       int64     `gorm:"not null;index" json:"book_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Content      string    `gorm:"type:longtext" json:"content,omitempty"`
	ChapterOrder int       `gorm:"not null;index" json:"chapter_order"`
	IsFree       bool      `gorm:"default:false" json:"is_free"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Chapter) TableName() string {
	return "chapters"
}
