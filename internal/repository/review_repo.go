package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Review{}).Error
}

// GetRatedByUserAndBook 用户对某本书的带评分书评（每人每书至多一条）
func (r *ReviewRepository) GetRatedByUserAndBook(userID, bookID int64) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND book_id = ? AND rating IS NOT NULL", userID, bookID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// AverageAndCount 某本书的平均评分（1 位小数由调用方处理）与评分数，
// 纯留言不计入
func (r *ReviewRepository) AverageAndCount(bookID int64) (float64, int64, error) {
	type result struct {
		Avg   *float64 `gorm:"column:avg"`
		Count int64    `gorm:"column:count"`
	}
	var row result
	err := r.db.Model(&model.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("book_id = ? AND rating IS NOT NULL", bookID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, 0, nil
	}
	return *row.Avg, row.Count, nil
}

// RatingAgg 按书籍的评分聚合行
type RatingAgg struct {
	BookID int64   `gorm:"column:book_id"`
	Avg    float64 `gorm:"column:avg"`
	Count  int64   `gorm:"column:count"`
}

// AggregatesFor 批量获取多本书的评分聚合，避免列表页 N+1 查询
func (r *ReviewRepository) AggregatesFor(bookIDs []int64) (map[int64]RatingAgg, error) {
	result := make(map[int64]RatingAgg, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	var rows []RatingAgg
	err := r.db.Model(&model.Review{}).
		Select("book_id, AVG(rating) AS avg, COUNT(*) AS count").
		Where("book_id IN ? AND rating IS NOT NULL", bookIDs).
		Group("book_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.BookID] = row
	}
	return result, nil
}

// ListRatedByBook 某本书的带评分书评，按时间倒序
func (r *ReviewRepository) ListRatedByBook(bookID int64) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("User").
		Where("book_id = ? AND rating IS NOT NULL", bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListCommentsByBook 某本书最近的留言（含带评分书评的文字部分）
func (r *ReviewRepository) ListCommentsByBook(bookID int64, limit int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("User").
		Where("book_id = ? AND comment <> ''", bookID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// AdminListFilter 后台书评筛选条件
type AdminListFilter struct {
	SearchTerm string
	Rating     *int
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
}

// AdminList 后台书评列表，支持搜索、评分过滤、时间区间与排序
func (r *ReviewRepository) AdminList(filter AdminListFilter, page, pageSize int) ([]*model.Review, int64, error) {
	query := r.db.Model(&model.Review{}).
		Joins("JOIN books ON books.id = reviews.book_id").
		Joins("JOIN users ON users.id = reviews.user_id")

	if filter.SearchTerm != "" {
		like := "%" + filter.SearchTerm + "%"
		query = query.Where("books.title LIKE ? OR users.email LIKE ? OR reviews.comment LIKE ?",
			like, like, like)
	}
	if filter.Rating != nil {
		query = query.Where("reviews.rating = ?", *filter.Rating)
	}
	if filter.StartDate != nil {
		query = query.Where("reviews.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("reviews.created_at < ?", *filter.EndDate)
	}

	switch filter.SortBy {
	case "oldest":
		query = query.Order("reviews.created_at ASC")
	case "rating_high":
		query = query.Order("reviews.rating DESC, reviews.created_at DESC")
	case "rating_low":
		query = query.Order("reviews.rating ASC, reviews.created_at DESC")
	default:
		query = query.Order("reviews.created_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*model.Review
	offset := (page - 1) * pageSize
	err := query.Preload("Book").Preload("User").
		Offset(offset).Limit(pageSize).
		Find(&reviews).Error
	return reviews, total, err
}
