package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

type ChapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.db.Create(chapter).Error
}

func (r *ChapterRepository) GetByID(id int64) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.Where("id = ?", id).First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// GetWithBook 获取章节及所属书籍
func (r *ChapterRepository) GetWithBook(id int64) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.Preload("Book").Where("id = ?", id).First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.db.Save(chapter).Error
}

func (r *ChapterRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Chapter{}).Error
}

// ListByBook 按阅读顺序获取书籍的所有章节（不含正文）
func (r *ChapterRepository) ListByBook(bookID int64) ([]*model.Chapter, error) {
	var chapters []*model.Chapter
	err := r.db.Select("id", "book_id", "title", "chapter_order", "is_free").
		Where("book_id = ?", bookID).
		Order("chapter_order ASC").
		Find(&chapters).Error
	return chapters, err
}

// CountsByBook 批量获取多本书的章节数
func (r *ChapterRepository) CountsByBook(bookIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	type row struct {
		BookID int64 `gorm:"column:book_id"`
		Count  int64 `gorm:"column:count"`
	}
	var rows []row
	err := r.db.Model(&model.Chapter{}).
		Select("book_id, COUNT(*) AS count").
		Where("book_id IN ?", bookIDs).
		Group("book_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		result[r.BookID] = r.Count
	}
	return result, nil
}

// Prev 同书中顺序号小于 order 的最近章节，没有则返回 nil
func (r *ChapterRepository) Prev(bookID int64, order int) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.Select("id", "book_id", "title", "chapter_order", "is_free").
		Where("book_id = ? AND chapter_order < ?", bookID, order).
		Order("chapter_order DESC").
		First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// Next 同书中顺序号大于 order 的最近章节，没有则返回 nil
func (r *ChapterRepository) Next(bookID int64, order int) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.Select("id", "book_id", "title", "chapter_order", "is_free").
		Where("book_id = ? AND chapter_order > ?", bookID, order).
		Order("chapter_order ASC").
		First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}
