package repository

import (
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// BookWithRating 带评分聚合的书籍行
type BookWithRating struct {
	model.Book
	AvgRating   float64 `gorm:"column:avg_rating"`
	ReviewCount int64   `gorm:"column:review_count"`
}

func (r *BookRepository) Create(book *model.Book) error {
	return r.db.Create(book).Error
}

func (r *BookRepository) GetByID(id int64) (*model.Book, error) {
	var book model.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetWithChapters 获取书籍及按序排列的章节（不含正文）
func (r *BookRepository) GetWithChapters(id int64) (*model.Book, error) {
	var book model.Book
	err := r.db.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "book_id", "title", "chapter_order", "is_free").
				Order("chapter_order ASC")
		}).
		Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) Update(book *model.Book) error {
	return r.db.Save(book).Error
}

// Delete 删除书籍，章节与媒体由外键级联删除
func (r *BookRepository) Delete(id int64) error {
	return r.db.Select("Chapters", "MediaFiles").Delete(&model.Book{ID: id}).Error
}

// IncrementViews 浏览计数原子自增，避免并发丢失更新
func (r *BookRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Book{}).Where("id = ?", id).
		Update("total_views", gorm.Expr("total_views + 1")).Error
}

func (r *BookRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Book{}).Count(&count).Error
	return count, err
}

// List 按关键词与筛选条件获取书籍，按更新时间倒序。
// 关键词匹配书名或作者。
func (r *BookRepository) List(keyword string, genre, bookType, ageRating *int) ([]*model.Book, error) {
	query := r.db.Model(&model.Book{})

	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", like, like)
	}
	if genre != nil {
		query = query.Where("genre = ?", *genre)
	}
	if bookType != nil {
		query = query.Where("book_type = ?", *bookType)
	}
	if ageRating != nil {
		query = query.Where("age_rating = ?", *ageRating)
	}

	var books []*model.Book
	err := query.Order("last_updated DESC").Find(&books).Error
	return books, err
}

// ListNewUpdates 最近更新的书籍
func (r *BookRepository) ListNewUpdates(limit int) ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.Order("last_updated DESC").Limit(limit).Find(&books).Error
	return books, err
}

// ListTopRated 有评分的书籍按平均分与评分数排序
func (r *BookRepository) ListTopRated(limit int) ([]*BookWithRating, error) {
	var rows []*BookWithRating
	err := r.db.Model(&model.Book{}).
		Select("books.*, AVG(reviews.rating) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("JOIN reviews ON reviews.book_id = books.id AND reviews.rating IS NOT NULL").
		Group("books.id").
		Order("avg_rating DESC, review_count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListHot 有评分的书籍按平均分与浏览量排序
func (r *BookRepository) ListHot(limit int) ([]*BookWithRating, error) {
	var rows []*BookWithRating
	err := r.db.Model(&model.Book{}).
		Select("books.*, AVG(reviews.rating) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("JOIN reviews ON reviews.book_id = books.id AND reviews.rating IS NOT NULL").
		Group("books.id").
		Order("avg_rating DESC, books.total_views DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
