package dto

// CreateBookRequest 创建书籍请求
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Author      string `json:"author" binding:"max=100"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url" binding:"max=500"`
	AccessLevel int    `json:"access_level" binding:"min=0,max=1"`
	BookType    int    `json:"book_type" binding:"min=0,max=1"`
	Genre       int    `json:"genre" binding:"min=0,max=9"`
	AgeRating   int    `json:"age_rating" binding:"min=0,max=3"`
}

// UpdateBookRequest 更新书籍请求
type UpdateBookRequest = CreateBookRequest

// SearchRequest 搜索请求
type SearchRequest struct {
	Keyword   string `form:"keyword"`
	Genre     *int   `form:"genre"`
	BookType  *int   `form:"book_type"`
	AgeRating *int   `form:"age_rating"`
}

// BookItem 书籍列表项
type BookItem struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	CoverURL      string  `json:"cover_url"`
	AccessLevel   int     `json:"access_level"`
	BookType      int     `json:"book_type"`
	Genre         int     `json:"genre"`
	GenreName     string  `json:"genre_name"`
	AgeRating     int     `json:"age_rating"`
	TotalViews    int64   `json:"total_views"`
	ChapterCount  int     `json:"chapter_count"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
	LastUpdated   string  `json:"last_updated"`
}

// ChapterItem 章节列表项（不含正文）
type ChapterItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	ChapterOrder int    `json:"chapter_order"`
	IsFree       bool   `json:"is_free"`
}

// BookDetail 书籍详情
type BookDetail struct {
	BookItem
	Description     string        `json:"description"`
	Chapters        []ChapterItem `json:"chapters"`
	HasUserReviewed bool          `json:"has_user_reviewed"`
	UserRating      *int          `json:"user_rating,omitempty"`
	IsFavorited     bool          `json:"is_favorited"`
}

// HomeResponse 首页数据
type HomeResponse struct {
	HotBooks   []*BookItem `json:"hot_books"`
	NewUpdates []*BookItem `json:"new_updates"`
	TopRated   []*BookItem `json:"top_rated"`
}

// CreateChapterRequest 创建章节请求
type CreateChapterRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Content      string `json:"content"`
	ChapterOrder int    `json:"chapter_order" binding:"required,min=1"`
	IsFree       bool   `json:"is_free"`
}

// UpdateChapterRequest 更新章节请求
type UpdateChapterRequest = CreateChapterRequest

// CreateMediaRequest 添加媒体请求
type CreateMediaRequest struct {
	URL       string `json:"url" binding:"required,max=500"`
	MediaType int    `json:"media_type" binding:"min=0,max=1"`
}

// MediaItem 媒体列表项
type MediaItem struct {
	ID           int64  `json:"id"`
	BookID       int64  `json:"book_id"`
	URL          string `json:"url"`
	MediaType    int    `json:"media_type"`
	UploadedDate string `json:"uploaded_date"`
}

// UploadMediaResponse 媒体文件上传响应
type UploadMediaResponse struct {
	URL       string `json:"url"`
	MediaType int    `json:"media_type"`
	HTML      string `json:"html"`
}
