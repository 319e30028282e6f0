package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
)

var (
	ErrReviewNotFound = errors.New("书评不存在")
)

// ReviewService 评分与留言。评分类书评每人每书一条（重复提交覆盖旧评分），
// 留言只追加不去重。
type ReviewService struct {
	bookRepo   *repository.BookRepository
	reviewRepo *repository.ReviewRepository
}

func NewReviewService(bookRepo *repository.BookRepository, reviewRepo *repository.ReviewRepository) *ReviewService {
	return &ReviewService{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
	}
}

// SubmitReview 提交评分。已评过分则覆盖旧评分与评语，否则新建。
// 返回更新后的聚合评分。
func (s *ReviewService) SubmitReview(userID, bookID int64, req *dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error) {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	rating := req.Rating

	existing, err := s.reviewRepo.GetRatedByUserAndBook(userID, bookID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Rating = &rating
		existing.Comment = req.Comment
		if err := s.reviewRepo.Update(existing); err != nil {
			return nil, err
		}
	} else {
		review := &model.Review{
			BookID:  bookID,
			UserID:  userID,
			Rating:  &rating,
			Comment: req.Comment,
		}
		if err := s.reviewRepo.Create(review); err != nil {
			return nil, err
		}
	}

	avg, count, err := s.reviewRepo.AverageAndCount(bookID)
	if err != nil {
		return nil, err
	}
	return &dto.SubmitReviewResponse{
		AverageRating: round1(avg),
		TotalReviews:  count,
	}, nil
}

// SubmitComment 提交留言（纯文字，不带评分）
func (s *ReviewService) SubmitComment(userID, bookID int64, req *dto.SubmitCommentRequest) (*dto.CommentItem, error) {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	review := &model.Review{
		BookID:  bookID,
		UserID:  userID,
		Comment: strings.TrimSpace(req.Content),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	return &dto.CommentItem{
		ID:        review.ID,
		Content:   review.Comment,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}, nil
}

// BookReviews 某本书的带评分书评
func (s *ReviewService) BookReviews(bookID int64) ([]*dto.ReviewItem, error) {
	reviews, err := s.reviewRepo.ListRatedByBook(bookID)
	if err != nil {
		return nil, err
	}
	return toReviewItems(reviews), nil
}

// BookComments 某本书最近的留言
func (s *ReviewService) BookComments(bookID int64, limit int) ([]*dto.CommentItem, error) {
	reviews, err := s.reviewRepo.ListCommentsByBook(bookID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CommentItem, 0, len(reviews))
	for _, r := range reviews {
		item := &dto.CommentItem{
			ID:        r.ID,
			Content:   r.Comment,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
		if r.User != nil {
			item.UserName = r.User.FullName
		}
		items = append(items, item)
	}
	return items, nil
}

// AdminList 后台书评列表
func (s *ReviewService) AdminList(req *dto.AdminReviewListRequest) ([]*dto.ReviewItem, int64, error) {
	filter := repository.AdminListFilter{
		SearchTerm: strings.TrimSpace(req.SearchTerm),
		Rating:     req.Rating,
		SortBy:     req.SortBy,
	}

	if req.StartDate != "" {
		t, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
		if err == nil {
			filter.StartDate = &t
		}
	}
	if req.EndDate != "" {
		t, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
		if err == nil {
			// 截止日期按整天闭区间处理
			end := t.AddDate(0, 0, 1)
			filter.EndDate = &end
		}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 30
	}

	reviews, total, err := s.reviewRepo.AdminList(filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toReviewItems(reviews), total, nil
}

// AdminUpdate 后台修改书评内容，作者与所属书籍不可变
func (s *ReviewService) AdminUpdate(reviewID int64, req *dto.UpdateReviewRequest) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if req.Rating != nil {
		review.Rating = req.Rating
	}
	review.Comment = req.Comment

	return s.reviewRepo.Update(review)
}

// AdminDelete 后台删除书评
func (s *ReviewService) AdminDelete(reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return s.reviewRepo.Delete(reviewID)
}

func toReviewItems(reviews []*model.Review) []*dto.ReviewItem {
	items := make([]*dto.ReviewItem, 0, len(reviews))
	for _, r := range reviews {
		item := &dto.ReviewItem{
			ID:        r.ID,
			BookID:    r.BookID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
			UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
		}
		if r.Book != nil {
			item.BookTitle = r.Book.Title
		}
		if r.User != nil {
			item.UserName = r.User.FullName
		}
		items = append(items, item)
	}
	return items
}
