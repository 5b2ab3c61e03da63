package mysql

import (
	"encoding/json"
	"errors"
	"time"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"

	"gorm.io/gorm"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

func NewCommunityMemberRepository(db *gorm.DB) *CommunityMemberRepository {
	return &CommunityMemberRepository{DB: db}
}

// Add 插入成员记录并写 outbox。唯一键冲突映射为 ErrAlreadyMember，
// 数据库约束是最终防线，service 层的预检查可能被并发绕过
func (r *CommunityMemberRepository) Add(m *model.CommunityMembership) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return r.addTx(tx, m)
	})
}

func (r *CommunityMemberRepository) addTx(tx *gorm.DB, m *model.CommunityMembership) error {
	if err := tx.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkg.ErrAlreadyMember
		}
		return err
	}
	return insertOutbox(tx, "member_added", "community", m.CommunityID, m.UserID, string(m.Role))
}

func (r *CommunityMemberRepository) Find(userID, communityID uint64) (*model.CommunityMembership, error) {
	var m model.CommunityMembership
	err := r.DB.Where("user_id = ? AND community_id = ?", userID, communityID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &m, err
}

func (r *CommunityMemberRepository) Exists(userID, communityID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMembership{}).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityMemberRepository) ListByCommunity(communityID uint64) ([]model.CommunityMembership, error) {
	var list []model.CommunityMembership
	err := r.DB.Where("community_id = ?", communityID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *CommunityMemberRepository) ListByUser(userID uint64) ([]model.CommunityMembership, error) {
	var list []model.CommunityMembership
	err := r.DB.Where("user_id = ?", userID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *CommunityMemberRepository) UpdateRole(m *model.CommunityMembership, role model.MemberRole) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Update("role", role).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "role_changed", "community", m.CommunityID, m.UserID, string(role))
	})
}

func (r *CommunityMemberRepository) Remove(m *model.CommunityMembership) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(m).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "member_removed", "community", m.CommunityID, m.UserID, string(m.Role))
	})
}

// insertOutbox 与成员变更同事务写事件表，由 relayer 异步投递 kafka
func insertOutbox(tx *gorm.DB, event, scopeType string, scopeID, userID uint64, role string) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"scope_type": scopeType,
		"scope_id":   scopeID,
		"user_id":    userID,
		"role":       role,
	})
	ob := &model.MembershipOutbox{
		EventType: event,
		ScopeType: scopeType,
		ScopeID:   scopeID,
		UserID:    userID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}
