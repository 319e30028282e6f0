package repository

import (
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(media *model.BookMedia) error {
	return r.db.Create(media).Error
}

func (r *MediaRepository) GetByID(id int64) (*model.BookMedia, error) {
	var media model.BookMedia
	err := r.db.Where("id = ?", id).First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.BookMedia{}).Error
}

// ListByBook 书籍的媒体文件，按上传时间倒序
func (r *MediaRepository) ListByBook(bookID int64) ([]*model.BookMedia, error) {
	var medias []*model.BookMedia
	err := r.db.Where("book_id = ?", bookID).
		Order("uploaded_date DESC").
		Find(&medias).Error
	return medias, err
}
