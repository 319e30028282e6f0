package dto

// PurchaseRequest 购买 VIP 请求
type PurchaseRequest struct {
	PackageType int `json:"package_type" binding:"required"`
	// 可选：付款时顺带补全联系信息
	FullName    string `json:"full_name" binding:"max=100"`
	PhoneNumber string `json:"phone_number" binding:"max=20"`
}

// PurchaseResponse 购买 VIP 响应
type PurchaseResponse struct {
	TransactionID int64  `json:"transaction_id"`
	PackageName   string `json:"package_name"`
	Amount        string `json:"amount"`
	ExpiresAt     string `json:"expires_at"`
	// 角色同步失败时的非致命警告，支付本身已成功
	Warning string `json:"warning,omitempty"`
}

// PackageItem VIP 套餐项
type PackageItem struct {
	Type   int    `json:"type"`
	Name   string `json:"name"`
	Months int    `json:"months"`
	Price  string `json:"price"`
}

// TransactionItem 交易记录项
type TransactionItem struct {
	ID              int64  `json:"id"`
	PackageType     int    `json:"package_type"`
	PackageName     string `json:"package_name"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transaction_date"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
}

// ExtendVipRequest 管理员延长 VIP 请求，999 表示永久
type ExtendVipRequest struct {
	Months int `json:"months" binding:"required"`
}

// ExtendVipResponse 管理员延长 VIP 响应
type ExtendVipResponse struct {
	ExpiresAt string `json:"expires_at"`
	Warning   string `json:"warning,omitempty"`
}
