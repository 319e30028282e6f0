package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
)

// FavoriteService 收藏。同一本书重复收藏被唯一索引拦下，
// 对外表现为幂等的切换。
type FavoriteService struct {
	bookRepo     *repository.BookRepository
	favoriteRepo *repository.FavoriteRepository
}

func NewFavoriteService(bookRepo *repository.BookRepository, favoriteRepo *repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{
		bookRepo:     bookRepo,
		favoriteRepo: favoriteRepo,
	}
}

// Toggle 切换收藏状态，返回切换后的状态和该书收藏总数
func (s *FavoriteService) Toggle(userID, bookID int64) (*dto.ToggleFavoriteResponse, error) {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	existing, err := s.favoriteRepo.GetByUserAndBook(userID, bookID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var favorited bool
	if existing != nil {
		if err := s.favoriteRepo.Delete(existing.ID); err != nil {
			return nil, err
		}
	} else {
		favorite := &model.Favorite{
			UserID:    userID,
			BookID:    bookID,
			DateAdded: time.Now(),
		}
		if err := s.favoriteRepo.Create(favorite); err != nil {
			return nil, err
		}
		favorited = true
	}

	count, err := s.favoriteRepo.CountByBook(bookID)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleFavoriteResponse{
		Favorited: favorited,
		Count:     count,
	}, nil
}

// Status 用户是否收藏了某本书
func (s *FavoriteService) Status(userID, bookID int64) (*dto.FavoriteStatusResponse, error) {
	favorited, err := s.favoriteRepo.Exists(userID, bookID)
	if err != nil {
		return nil, err
	}
	return &dto.FavoriteStatusResponse{Favorited: favorited}, nil
}

// List 用户收藏列表，按收藏时间倒序分页
func (s *FavoriteService) List(userID int64, page, pageSize int) ([]*dto.FavoriteItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	favorites, total, err := s.favoriteRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toFavoriteItems(favorites), total, nil
}

// AdminList 后台收藏列表，可按用户、书籍过滤
func (s *FavoriteService) AdminList(userID, bookID *int64, page, pageSize int) ([]*dto.FavoriteItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 30
	}

	favorites, total, err := s.favoriteRepo.AdminList(userID, bookID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toFavoriteItems(favorites), total, nil
}

func toFavoriteItems(favorites []*model.Favorite) []*dto.FavoriteItem {
	items := make([]*dto.FavoriteItem, 0, len(favorites))
	for _, f := range favorites {
		item := &dto.FavoriteItem{
			ID:        f.ID,
			BookID:    f.BookID,
			DateAdded: f.DateAdded.Format(time.RFC3339),
		}
		if f.Book != nil {
			item.BookTitle = f.Book.Title
			item.CoverURL = f.Book.CoverURL
		}
		items = append(items, item)
	}
	return items
}
