package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	FullName string `json:"full_name" binding:"max=100"`
	// 注册时勾选开通 VIP 则赠送 1 个月
	WithVip bool `json:"with_vip"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=100"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID                    int64    `json:"id"`
	Email                 string   `json:"email"`
	FullName              string   `json:"full_name"`
	PhoneNumber           string   `json:"phone_number,omitempty"`
	Address               string   `json:"address,omitempty"`
	IsMember              bool     `json:"is_member"`
	SubscriptionExpiresAt string   `json:"subscription_expires_at,omitempty"`
	VipStatusText         string   `json:"vip_status_text"`
	VipExpiryText         string   `json:"vip_expiry_text"`
	Roles                 []string `json:"roles,omitempty"`
	RegistrationDate      string   `json:"registration_date"`
}
