package dto

// ChapterReadResponse 章节阅读响应
type ChapterReadResponse struct {
	ChapterID     int64  `json:"chapter_id"`
	BookID        int64  `json:"book_id"`
	BookTitle     string `json:"book_title"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ChapterOrder  int    `json:"chapter_order"`
	IsFree        bool   `json:"is_free"`
	PrevChapterID *int64 `json:"prev_chapter_id,omitempty"`
	NextChapterID *int64 `json:"next_chapter_id,omitempty"`
}

// HistoryItem 阅读历史项（每本书一条，指向最近读到的章节）
type HistoryItem struct {
	BookID       int64  `json:"book_id"`
	BookTitle    string `json:"book_title"`
	CoverURL     string `json:"cover_url"`
	ChapterID    int64  `json:"chapter_id"`
	ChapterTitle string `json:"chapter_title"`
	ChapterOrder int    `json:"chapter_order"`
	AccessTime   string `json:"access_time"`
}
