package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/api/middleware"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
	"github.com/vbook/vbook_go_server/internal/service"
)

type BookHandler struct {
	catalogService *service.CatalogService
}

func NewBookHandler(catalogService *service.CatalogService) *BookHandler {
	return &BookHandler{
		catalogService: catalogService,
	}
}

// Home 首页榜单
// GET /api/v1/home
func (h *BookHandler) Home(c *gin.Context) {
	resp, err := h.catalogService.Home()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, resp)
}

// Search 搜索书籍
// GET /api/v1/books
func (h *BookHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, err := h.catalogService.Search(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// Detail 书籍详情
// GET /api/v1/books/:id
func (h *BookHandler) Detail(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	// 未登录也能看详情，只是没有个人状态
	userID, _ := middleware.GetUserID(c)

	detail, err := h.catalogService.Detail(userID, bookID)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, detail)
}

// Chapters 书籍目录
// GET /api/v1/books/:id/chapters
func (h *BookHandler) Chapters(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	items, err := h.catalogService.Chapters(bookID)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, items)
}

// Create 创建书籍（后台）
// POST /api/v1/admin/books
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	book, err := h.catalogService.CreateBook(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "创建成功", book)
}

// Update 更新书籍（后台）
// PUT /api/v1/admin/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	book, err := h.catalogService.UpdateBook(bookID, &req)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "更新成功", book)
}

// Delete 删除书籍（后台）
// DELETE /api/v1/admin/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	if err := h.catalogService.DeleteBook(bookID); err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// CreateChapter 新增章节（后台）
// POST /api/v1/admin/books/:id/chapters
func (h *BookHandler) CreateChapter(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	chapter, err := h.catalogService.CreateChapter(bookID, &req)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "创建成功", chapter)
}

// UpdateChapter 更新章节（后台）
// PUT /api/v1/admin/chapters/:id
func (h *BookHandler) UpdateChapter(c *gin.Context) {
	chapterID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的章节ID")
		return
	}

	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	chapter, err := h.catalogService.UpdateChapter(chapterID, &req)
	if err != nil {
		switch err {
		case service.ErrChapterNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "更新成功", chapter)
}

// DeleteChapter 删除章节（后台）
// DELETE /api/v1/admin/chapters/:id
func (h *BookHandler) DeleteChapter(c *gin.Context) {
	chapterID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的章节ID")
		return
	}

	if err := h.catalogService.DeleteChapter(chapterID); err != nil {
		switch err {
		case service.ErrChapterNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// ListMedia 媒体列表（后台）
// GET /api/v1/admin/books/:id/media
func (h *BookHandler) ListMedia(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	items, err := h.catalogService.ListMedia(bookID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// AddMedia 登记外链媒体（后台）
// POST /api/v1/admin/books/:id/media
func (h *BookHandler) AddMedia(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	var req dto.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	media, err := h.catalogService.AddMedia(bookID, &req)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "添加成功", media)
}

// UploadMedia 上传媒体文件（后台）
// POST /api/v1/admin/books/:id/media/upload
func (h *BookHandler) UploadMedia(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "请选择要上传的文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	resp, err := h.catalogService.UploadMedia(bookID, file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrFileTooLarge, service.ErrBadFileType:
			response.ParamError(c, err.Error())
		case service.ErrOSSNotReady:
			response.ServerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "上传成功", resp)
}

// DeleteMedia 删除媒体（后台）
// DELETE /api/v1/admin/media/:id
func (h *BookHandler) DeleteMedia(c *gin.Context) {
	mediaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的媒体ID")
		return
	}

	if err := h.catalogService.DeleteMedia(mediaID); err != nil {
		switch err {
		case service.ErrMediaNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
