package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
)

var (
	ErrVipRequired = errors.New("VIP 内容，需订阅后阅读")
)

// EntitlementService 阅读权限判定。判定顺序固定：
// 免费内容 -> 有效 VIP -> 管理员豁免 -> 拒绝。
// member 角色只是 VIP 状态的投影，不参与判定，过期即失效。
type EntitlementService struct {
	identity identity.Provider
}

func NewEntitlementService(provider identity.Provider) *EntitlementService {
	return &EntitlementService{identity: provider}
}

// Evaluate 判定用户能否阅读章节，并返回本次放行是否命中管理员豁免。
// userID 为 0 表示未登录。允许时返回 nil，拒绝时返回 ErrVipRequired；
// 判定过程中的存储故障一律按拒绝处理，只记日志，不向阅读链路抛错。
func (s *EntitlementService) Evaluate(userID int64, book *model.Book, chapter *model.Chapter) (staffOverride bool, err error) {
	// 免费书籍整本可读
	if book.AccessLevel == model.AccessFree {
		return false, nil
	}

	// VIP 书籍的试读章节
	if chapter != nil && chapter.IsFree {
		return false, nil
	}

	if userID == 0 {
		return false, ErrVipRequired
	}

	user, err := s.identity.FindUserByID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("entitlement user lookup failed for user %d: %v", userID, err)
		}
		return false, ErrVipRequired
	}

	if user.VipActive(time.Now()) {
		return false, nil
	}

	// 管理员豁免：admin / super_admin 可预览全部内容
	for _, role := range []string{model.RoleAdmin, model.RoleSuperAdmin} {
		in, err := s.identity.IsInRole(userID, role)
		if err != nil {
			log.Printf("entitlement role lookup failed for user %d: %v", userID, err)
			continue
		}
		if in {
			return true, nil
		}
	}

	return false, ErrVipRequired
}

// CanRead 判定用户能否阅读章节，不关心放行途径
func (s *EntitlementService) CanRead(userID int64, book *model.Book, chapter *model.Chapter) error {
	_, err := s.Evaluate(userID, book, chapter)
	return err
}

// CanReadBook 书籍级判定（不看具体章节），用于详情页的权限标记
func (s *EntitlementService) CanReadBook(userID int64, book *model.Book) bool {
	return s.CanRead(userID, book, nil) == nil
}
