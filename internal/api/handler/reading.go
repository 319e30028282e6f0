package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/api/middleware"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
	"github.com/vbook/vbook_go_server/internal/service"
)

type ReadingHandler struct {
	readingService *service.ReadingService
}

func NewReadingHandler(readingService *service.ReadingService) *ReadingHandler {
	return &ReadingHandler{
		readingService: readingService,
	}
}

// ReadChapter 阅读章节正文
// GET /api/v1/chapters/:id/read
func (h *ReadingHandler) ReadChapter(c *gin.Context) {
	chapterID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的章节ID")
		return
	}

	// 免费内容无须登录
	userID, _ := middleware.GetUserID(c)

	resp, err := h.readingService.ReadChapter(userID, chapterID)
	if err != nil {
		switch err {
		case service.ErrChapterNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrVipRequired:
			response.VipRequiredError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, resp)
}

// History 阅读历史
// GET /api/v1/user/reading-history
func (h *ReadingHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.readingService.History(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}
