package model

import (
	"time"
)

// AccessLevel 书籍访问级别
type AccessLevel int

const (
	AccessFree    AccessLevel = 0 // 免费
	AccessPremium AccessLevel = 1 // VIP 专属
)

// BookType 书籍类型
type BookType int

const (
	TypeStory BookType = 0 // 连载故事
	TypeBook  BookType = 1 // 完整书籍
)

// Genre 书籍分类
type Genre int

const (
	GenreFantasy    Genre = 0
	GenreRomance    Genre = 1
	GenreMystery    Genre = 2
	GenreSciFi      Genre = 3
	GenreHorror     Genre = 4
	GenreAdventure  Genre = 5
	GenreHistorical Genre = 6
	GenreBiography  Genre = 7
	GenreSelfHelp   Genre = 8
	GenreEducation  Genre = 9
)

var genreNames = map[Genre]string{
	GenreFantasy:    "奇幻",
	GenreRomance:    "言情",
	GenreMystery:    "悬疑",
	GenreSciFi:      "科幻",
	GenreHorror:     "恐怖",
	GenreAdventure:  "冒险",
	GenreHistorical: "历史",
	GenreBiography:  "传记",
	GenreSelfHelp:   "成长",
	GenreEducation:  "教育",
}

// Name 分类显示名，未知值返回"其他"
func (g Genre) Name() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return "其他"
}

// AgeRating 年龄分级
type AgeRating int

const (
	RatingAllAges AgeRating = 0
	RatingTeen13  AgeRating = 1
	RatingTeen16  AgeRating = 2
	RatingAdult18 AgeRating = 3
)

type Book struct {
	ID          int64       `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:100;not null;index" json:"title"`
	Author      string      `gorm:"size:100" json:"author"`
	Description string      `gorm:"type:text" json:"description"`
	CoverURL    string      `gorm:"size:500" json:"cover_url"`
	AccessLevel AccessLevel `gorm:"not null;default:0" json:"access_level"`
	BookType    BookType    `gorm:"not null;default:0" json:"book_type"`
	Genre       Genre       `gorm:"not null;default:0;index" json:"genre"`
	AgeRating   AgeRating   `gorm:"not null;default:0" json:"age_rating"`
	TotalViews  int64       `gorm:"default:0" json:"total_views"`
	CreatedAt   time.Time   `json:"created_at"`
	LastUpdated time.Time   `json:"last_updated"`

	// 关联：删除书籍级联删除章节与媒体
	Chapters   []Chapter   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
	MediaFiles []BookMedia `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"media_files,omitempty"`
}

func (Book) TableName() string {
	return "books"
}
