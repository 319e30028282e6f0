package model

import (
	"time"
)

// MediaType 媒体类型
type MediaType int

const (
	MediaImage MediaType = 0
	MediaVideo MediaType = 1
)

type BookMedia struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	BookID       int64     `gorm:"not null;index" json:"book_id"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	MediaType    MediaType `gorm:"not null" json:"media_type"`
	UploadedDate time.Time `gorm:"not null" json:"uploaded_date"`
}

func (BookMedia) TableName() string {
	return "book_medias"
}
