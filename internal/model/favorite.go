package model

import (
	"time"
)

type Favorite struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_user_book_favorite" json:"user_id"`
	BookID    int64     `gorm:"not null;uniqueIndex:idx_user_book_favorite" json:"book_id"`
	DateAdded time.Time `gorm:"not null;index" json:"date_added"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
