package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
	"github.com/vbook/vbook_go_server/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListUsers 用户列表
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, total, err := h.adminService.ListUsers(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, req.Page, req.PageSize, items)
}

// GetUser 用户详情
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	item, err := h.adminService.GetUser(userID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, item)
}

// EditUser 编辑用户联系信息
// PUT /api/v1/admin/users/:id
func (h *AdminHandler) EditUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	var req dto.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.adminService.EditUser(userID, &req); err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "更新成功", nil)
}

// DeleteUser 删除用户
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	if err := h.adminService.DeleteUser(userID); err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrCannotEditSuper:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// ListAdmins 管理员账号列表（超级管理员）
// GET /api/v1/admin/accounts
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	items, err := h.adminService.ListAdmins()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// CreateAdmin 创建管理员账号（超级管理员）
// POST /api/v1/admin/accounts
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.adminService.CreateAdmin(&req)
	if err != nil {
		switch err {
		case service.ErrEmailExists:
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "创建成功", item)
}

// UpdateAdmin 更新管理员账号（超级管理员）
// PUT /api/v1/admin/accounts/:id
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.adminService.UpdateAdmin(userID, &req); err != nil {
		switch err {
		case service.ErrUserNotFound, service.ErrNotAdmin:
			response.NotFoundError(c, err.Error())
		case service.ErrCannotEditSuper:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "更新成功", nil)
}

// DeleteAdmin 移除管理员账号（超级管理员）
// DELETE /api/v1/admin/accounts/:id
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	if err := h.adminService.DeleteAdmin(userID); err != nil {
		switch err {
		case service.ErrNotAdmin:
			response.NotFoundError(c, err.Error())
		case service.ErrCannotEditSuper:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
