package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/config"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/pkg/oss"
	"github.com/vbook/vbook_go_server/internal/repository"
)

var (
	ErrBookNotFound    = errors.New("书籍不存在")
	ErrChapterNotFound = errors.New("章节不存在")
	ErrMediaNotFound   = errors.New("媒体文件不存在")
	ErrFileTooLarge    = errors.New("文件超过大小限制")
	ErrBadFileType     = errors.New("不支持的文件类型")
	ErrOSSNotReady     = errors.New("OSS 客户端未配置")
)

const homeListLimit = 10

// CatalogService 书籍目录：前台首页/搜索/详情与后台增删改
type CatalogService struct {
	bookRepo     *repository.BookRepository
	chapterRepo  *repository.ChapterRepository
	reviewRepo   *repository.ReviewRepository
	favoriteRepo *repository.FavoriteRepository
	mediaRepo    *repository.MediaRepository
	ossClient    *oss.Client
	cfg          *config.Config
}

func NewCatalogService(
	bookRepo *repository.BookRepository,
	chapterRepo *repository.ChapterRepository,
	reviewRepo *repository.ReviewRepository,
	favoriteRepo *repository.FavoriteRepository,
	mediaRepo *repository.MediaRepository,
	ossClient *oss.Client,
	cfg *config.Config,
) *CatalogService {
	return &CatalogService{
		bookRepo:     bookRepo,
		chapterRepo:  chapterRepo,
		reviewRepo:   reviewRepo,
		favoriteRepo: favoriteRepo,
		mediaRepo:    mediaRepo,
		ossClient:    ossClient,
		cfg:          cfg,
	}
}

// Home 首页三个榜单：热门、最近更新、高分
func (s *CatalogService) Home() (*dto.HomeResponse, error) {
	hot, err := s.bookRepo.ListHot(homeListLimit)
	if err != nil {
		return nil, err
	}

	newUpdates, err := s.bookRepo.ListNewUpdates(homeListLimit)
	if err != nil {
		return nil, err
	}

	topRated, err := s.bookRepo.ListTopRated(homeListLimit)
	if err != nil {
		return nil, err
	}

	newItems, err := s.buildBookItems(newUpdates)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(hot)+len(topRated))
	for _, row := range hot {
		ids = append(ids, row.ID)
	}
	for _, row := range topRated {
		ids = append(ids, row.ID)
	}
	chapterCounts, err := s.chapterRepo.CountsByBook(ids)
	if err != nil {
		return nil, err
	}

	return &dto.HomeResponse{
		HotBooks:   ratedToItems(hot, chapterCounts),
		NewUpdates: newItems,
		TopRated:   ratedToItems(topRated, chapterCounts),
	}, nil
}

// Search 按关键词与筛选条件搜索书籍
func (s *CatalogService) Search(req *dto.SearchRequest) ([]*dto.BookItem, error) {
	books, err := s.bookRepo.List(strings.TrimSpace(req.Keyword), req.Genre, req.BookType, req.AgeRating)
	if err != nil {
		return nil, err
	}
	return s.buildBookItems(books)
}

// Chapters 书籍目录，按章节序号排列
func (s *CatalogService) Chapters(bookID int64) ([]dto.ChapterItem, error) {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	chapters, err := s.chapterRepo.ListByBook(bookID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChapterItem, 0, len(chapters))
	for _, ch := range chapters {
		items = append(items, dto.ChapterItem{
			ID:           ch.ID,
			Title:        ch.Title,
			ChapterOrder: ch.ChapterOrder,
			IsFree:       ch.IsFree,
		})
	}
	return items, nil
}

// Detail 书籍详情。userID 为 0 时不带个人状态。
func (s *CatalogService) Detail(userID, bookID int64) (*dto.BookDetail, error) {
	book, err := s.bookRepo.GetWithChapters(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	avg, count, err := s.reviewRepo.AverageAndCount(bookID)
	if err != nil {
		return nil, err
	}

	detail := &dto.BookDetail{
		BookItem:    *bookToItem(book, avg, count, len(book.Chapters)),
		Description: book.Description,
		Chapters:    make([]dto.ChapterItem, 0, len(book.Chapters)),
	}

	for _, ch := range book.Chapters {
		detail.Chapters = append(detail.Chapters, dto.ChapterItem{
			ID:           ch.ID,
			Title:        ch.Title,
			ChapterOrder: ch.ChapterOrder,
			IsFree:       ch.IsFree,
		})
	}

	if userID > 0 {
		review, err := s.reviewRepo.GetRatedByUserAndBook(userID, bookID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if review != nil {
			detail.HasUserReviewed = true
			detail.UserRating = review.Rating
		}

		favorited, err := s.favoriteRepo.Exists(userID, bookID)
		if err != nil {
			return nil, err
		}
		detail.IsFavorited = favorited
	}

	return detail, nil
}

// CreateBook 创建书籍（后台）
func (s *CatalogService) CreateBook(req *dto.CreateBookRequest) (*model.Book, error) {
	now := time.Now()
	book := &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		AccessLevel: model.AccessLevel(req.AccessLevel),
		BookType:    model.BookType(req.BookType),
		Genre:       model.Genre(req.Genre),
		AgeRating:   model.AgeRating(req.AgeRating),
		LastUpdated: now,
	}

	if err := s.bookRepo.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook 更新书籍（后台）
func (s *CatalogService) UpdateBook(bookID int64, req *dto.UpdateBookRequest) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	book.Title = req.Title
	book.Author = req.Author
	book.Description = req.Description
	book.CoverURL = req.CoverURL
	book.AccessLevel = model.AccessLevel(req.AccessLevel)
	book.BookType = model.BookType(req.BookType)
	book.Genre = model.Genre(req.Genre)
	book.AgeRating = model.AgeRating(req.AgeRating)
	book.LastUpdated = time.Now()

	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook 删除书籍，章节与媒体级联删除
func (s *CatalogService) DeleteBook(bookID int64) error {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return s.bookRepo.Delete(bookID)
}

// CreateChapter 新增章节并刷新书籍更新时间
func (s *CatalogService) CreateChapter(bookID int64, req *dto.CreateChapterRequest) (*model.Chapter, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	chapter := &model.Chapter{
		BookID:       book.ID,
		Title:        req.Title,
		Content:      req.Content,
		ChapterOrder: req.ChapterOrder,
		IsFree:       req.IsFree,
	}
	if err := s.chapterRepo.Create(chapter); err != nil {
		return nil, err
	}

	s.touchBook(book)
	return chapter, nil
}

// UpdateChapter 更新章节并刷新书籍更新时间
func (s *CatalogService) UpdateChapter(chapterID int64, req *dto.UpdateChapterRequest) (*model.Chapter, error) {
	chapter, err := s.chapterRepo.GetWithBook(chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	chapter.Title = req.Title
	chapter.Content = req.Content
	chapter.ChapterOrder = req.ChapterOrder
	chapter.IsFree = req.IsFree

	book := chapter.Book
	chapter.Book = nil
	if err := s.chapterRepo.Update(chapter); err != nil {
		return nil, err
	}

	s.touchBook(book)
	return chapter, nil
}

// DeleteChapter 删除章节
func (s *CatalogService) DeleteChapter(chapterID int64) error {
	if _, err := s.chapterRepo.GetByID(chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChapterNotFound
		}
		return err
	}
	return s.chapterRepo.Delete(chapterID)
}

// ListMedia 书籍的媒体文件列表
func (s *CatalogService) ListMedia(bookID int64) ([]*dto.MediaItem, error) {
	medias, err := s.mediaRepo.ListByBook(bookID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MediaItem, 0, len(medias))
	for _, m := range medias {
		items = append(items, &dto.MediaItem{
			ID:           m.ID,
			BookID:       m.BookID,
			URL:          m.URL,
			MediaType:    int(m.MediaType),
			UploadedDate: m.UploadedDate.Format(time.RFC3339),
		})
	}
	return items, nil
}

// AddMedia 登记外链媒体
func (s *CatalogService) AddMedia(bookID int64, req *dto.CreateMediaRequest) (*model.BookMedia, error) {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	media := &model.BookMedia{
		BookID:       bookID,
		URL:          req.URL,
		MediaType:    model.MediaType(req.MediaType),
		UploadedDate: time.Now(),
	}
	if err := s.mediaRepo.Create(media); err != nil {
		return nil, err
	}
	return media, nil
}

// UploadMedia 上传章节配图/视频到 OSS 并登记。
// 返回可直接嵌入正文编辑器的 HTML 片段。
func (s *CatalogService) UploadMedia(bookID int64, file io.Reader, filename string, size int64) (*dto.UploadMediaResponse, error) {
	if s.ossClient == nil {
		return nil, ErrOSSNotReady
	}

	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if s.cfg.Upload.MaxSize > 0 && size > s.cfg.Upload.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	mediaType, err := s.classifyExtension(ext)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	url, err := s.ossClient.UploadChapterMedia(bookID, data, ext)
	if err != nil {
		return nil, err
	}

	media := &model.BookMedia{
		BookID:       bookID,
		URL:          url,
		MediaType:    mediaType,
		UploadedDate: time.Now(),
	}
	if err := s.mediaRepo.Create(media); err != nil {
		return nil, err
	}

	return &dto.UploadMediaResponse{
		URL:       url,
		MediaType: int(mediaType),
		HTML:      mediaHTML(url, mediaType),
	}, nil
}

// DeleteMedia 删除媒体登记，OSS 上的文件尽力清理
func (s *CatalogService) DeleteMedia(mediaID int64) error {
	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.mediaRepo.Delete(mediaID); err != nil {
		return err
	}

	if s.ossClient != nil {
		if key := s.ossClient.ExtractObjectKey(media.URL); key != "" {
			_ = s.ossClient.Delete(key)
		}
	}
	return nil
}

// classifyExtension 按配置的扩展名白名单归类媒体类型
func (s *CatalogService) classifyExtension(ext string) (model.MediaType, error) {
	for _, allowed := range s.cfg.Upload.ImageExtensions {
		if ext == allowed {
			return model.MediaImage, nil
		}
	}
	for _, allowed := range s.cfg.Upload.VideoExtensions {
		if ext == allowed {
			return model.MediaVideo, nil
		}
	}
	return 0, ErrBadFileType
}

func mediaHTML(url string, mediaType model.MediaType) string {
	if mediaType == model.MediaVideo {
		return fmt.Sprintf(`<video controls src="%s"></video>`, url)
	}
	return fmt.Sprintf(`<img src="%s" alt="" />`, url)
}

func (s *CatalogService) touchBook(book *model.Book) {
	if book == nil {
		return
	}
	book.LastUpdated = time.Now()
	if err := s.bookRepo.Update(book); err != nil {
		// 更新时间刷新失败不影响主流程
		return
	}
}

// buildBookItems 批量组装列表项，评分与章节数合并查询
func (s *CatalogService) buildBookItems(books []*model.Book) ([]*dto.BookItem, error) {
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	ratings, err := s.reviewRepo.AggregatesFor(ids)
	if err != nil {
		return nil, err
	}
	chapterCounts, err := s.chapterRepo.CountsByBook(ids)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.BookItem, 0, len(books))
	for _, b := range books {
		agg := ratings[b.ID]
		items = append(items, bookToItem(b, agg.Avg, agg.Count, int(chapterCounts[b.ID])))
	}
	return items, nil
}

func ratedToItems(rows []*repository.BookWithRating, chapterCounts map[int64]int64) []*dto.BookItem {
	items := make([]*dto.BookItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, bookToItem(&row.Book, row.AvgRating, row.ReviewCount, int(chapterCounts[row.ID])))
	}
	return items
}

func bookToItem(book *model.Book, avgRating float64, reviewCount int64, chapterCount int) *dto.BookItem {
	return &dto.BookItem{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		CoverURL:      book.CoverURL,
		AccessLevel:   int(book.AccessLevel),
		BookType:      int(book.BookType),
		Genre:         int(book.Genre),
		GenreName:     book.Genre.Name(),
		AgeRating:     int(book.AgeRating),
		TotalViews:    book.TotalViews,
		ChapterCount:  chapterCount,
		AverageRating: round1(avgRating),
		ReviewCount:   reviewCount,
		LastUpdated:   book.LastUpdated.Format(time.RFC3339),
	}
}
