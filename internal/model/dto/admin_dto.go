package dto

// UserListRequest 后台用户列表请求
type UserListRequest struct {
	SearchTerm string `form:"search_term"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=30"`
}

// AdminUserItem 后台用户列表项
type AdminUserItem struct {
	ID                    int64    `json:"id"`
	Email                 string   `json:"email"`
	FullName              string   `json:"full_name"`
	IsMember              bool     `json:"is_member"`
	SubscriptionExpiresAt string   `json:"subscription_expires_at,omitempty"`
	RegistrationDate      string   `json:"registration_date"`
	Roles                 []string `json:"roles,omitempty"`
}

// EditUserRequest 后台编辑用户联系信息请求
type EditUserRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	FullName string `json:"full_name" binding:"max=100"`
}

// UpdateAdminRequest 更新管理员请求
type UpdateAdminRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=100"`
	NewPassword *string `json:"new_password" binding:"omitempty,min=6,max=100"`
}
