package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
)

// ReadingService 章节阅读与阅读历史。
// 每次阅读：权限判定 -> 原子累加书籍阅读量 -> 刷新阅读位置。
type ReadingService struct {
	bookRepo    *repository.BookRepository
	chapterRepo *repository.ChapterRepository
	historyRepo *repository.HistoryRepository
	entitlement *EntitlementService
}

func NewReadingService(
	bookRepo *repository.BookRepository,
	chapterRepo *repository.ChapterRepository,
	historyRepo *repository.HistoryRepository,
	entitlement *EntitlementService,
) *ReadingService {
	return &ReadingService{
		bookRepo:    bookRepo,
		chapterRepo: chapterRepo,
		historyRepo: historyRepo,
		entitlement: entitlement,
	}
}

// ReadChapter 阅读章节正文。userID 为 0 表示未登录，只能读免费内容。
func (s *ReadingService) ReadChapter(userID, chapterID int64) (*dto.ChapterReadResponse, error) {
	chapter, err := s.chapterRepo.GetWithBook(chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	staffOverride, err := s.entitlement.Evaluate(userID, chapter.Book, chapter)
	if err != nil {
		return nil, err
	}

	// 阅读量用原子自增，并发下不丢计数
	if err := s.bookRepo.IncrementViews(chapter.BookID); err != nil {
		log.Printf("failed to increment views for book %d: %v", chapter.BookID, err)
	}

	// 管理员豁免属于后台预览，不刷新阅读位置
	if userID > 0 && !staffOverride {
		if err := s.historyRepo.Upsert(userID, chapter.BookID, chapter.ID, time.Now()); err != nil {
			log.Printf("failed to record reading history for user %d: %v", userID, err)
		}
	}

	resp := &dto.ChapterReadResponse{
		ChapterID:    chapter.ID,
		BookID:       chapter.BookID,
		BookTitle:    chapter.Book.Title,
		Title:        chapter.Title,
		Content:      chapter.Content,
		ChapterOrder: chapter.ChapterOrder,
		IsFree:       chapter.IsFree,
	}

	prev, err := s.chapterRepo.Prev(chapter.BookID, chapter.ChapterOrder)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		resp.PrevChapterID = &prev.ID
	}

	next, err := s.chapterRepo.Next(chapter.BookID, chapter.ChapterOrder)
	if err != nil {
		return nil, err
	}
	if next != nil {
		resp.NextChapterID = &next.ID
	}

	return resp, nil
}

// History 用户的阅读历史，最多每本书一条，最近读的在前
func (s *ReadingService) History(userID int64) ([]*dto.HistoryItem, error) {
	histories, err := s.historyRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.HistoryItem, 0, len(histories))
	for _, h := range histories {
		item := &dto.HistoryItem{
			BookID:     h.BookID,
			ChapterID:  h.ChapterID,
			AccessTime: h.AccessTime.Format(time.RFC3339),
		}
		if h.Book != nil {
			item.BookTitle = h.Book.Title
			item.CoverURL = h.Book.CoverURL
		}
		if h.Chapter != nil {
			item.ChapterTitle = h.Chapter.Title
			item.ChapterOrder = h.Chapter.ChapterOrder
		}
		items = append(items, item)
	}
	return items, nil
}
