package model

import (
	"time"
)

// Review 书评。Rating 为空表示纯留言（不参与评分统计），
// 否则取值 1-5；每个用户对每本书最多一条带评分的书评。
type Review struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BookID    int64     `gorm:"not null;index:idx_book_user_review" json:"book_id"`
	UserID    int64     `gorm:"not null;index:idx_book_user_review" json:"user_id"`
	Rating    *int      `json:"rating,omitempty"`
	Comment   string    `gorm:"size:1000" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// IsRated 是否为带评分的书评
func (r *Review) IsRated() bool {
	return r.Rating != nil
}
