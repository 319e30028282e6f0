package repository

import (
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create 依赖 (user_id, book_id) 唯一索引，重复插入返回约束错误
func (r *FavoriteRepository) Create(favorite *model.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *FavoriteRepository) GetByUserAndBook(userID, bookID int64) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Favorite{}).Error
}

func (r *FavoriteRepository) Exists(userID, bookID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FavoriteRepository) CountByBook(bookID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}

func (r *FavoriteRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).Count(&count).Error
	return count, err
}

// ListByUser 用户收藏，按收藏时间倒序分页
func (r *FavoriteRepository) ListByUser(userID int64, page, pageSize int) ([]*model.Favorite, int64, error) {
	query := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []*model.Favorite
	offset := (page - 1) * pageSize
	err := query.Preload("Book").
		Order("date_added DESC").
		Offset(offset).Limit(pageSize).
		Find(&favorites).Error
	return favorites, total, err
}

// AdminList 后台收藏列表，可按用户、书籍过滤
func (r *FavoriteRepository) AdminList(userID, bookID *int64, page, pageSize int) ([]*model.Favorite, int64, error) {
	query := r.db.Model(&model.Favorite{})

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if bookID != nil {
		query = query.Where("book_id = ?", *bookID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []*model.Favorite
	offset := (page - 1) * pageSize
	err := query.Preload("Book").Preload("User").
		Order("date_added DESC").
		Offset(offset).Limit(pageSize).
		Find(&favorites).Error
	return favorites, total, err
}

// TopBooks 收藏数最多的书籍，计数倒序，同数按书籍 ID 升序
func (r *FavoriteRepository) TopBooks(limit int) ([]*BookCount, error) {
	var rows []*BookCount
	err := r.db.Model(&model.Book{}).
		Select("books.id AS book_id, books.title AS title, COUNT(favorites.id) AS count").
		Joins("LEFT JOIN favorites ON favorites.book_id = books.id").
		Group("books.id, books.title").
		Order("count DESC, books.id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// GenreCount 按分类的收藏计数行
type GenreCount struct {
	Genre model.Genre `gorm:"column:genre"`
	Count int64       `gorm:"column:count"`
}

// GenreCounts 收藏按书籍分类的分布
func (r *FavoriteRepository) GenreCounts() ([]*GenreCount, error) {
	var rows []*GenreCount
	err := r.db.Model(&model.Favorite{}).
		Select("books.genre AS genre, COUNT(*) AS count").
		Joins("JOIN books ON books.id = favorites.book_id").
		Group("books.genre").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}
