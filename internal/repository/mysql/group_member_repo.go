package mysql

import (
	"errors"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"

	"gorm.io/gorm"
)

type GroupMemberRepository struct {
	DB *gorm.DB
}

func NewGroupMemberRepository(db *gorm.DB) *GroupMemberRepository {
	return &GroupMemberRepository{DB: db}
}

func (r *GroupMemberRepository) Add(m *model.GroupMembership) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return r.addTx(tx, m)
	})
}

func (r *GroupMemberRepository) addTx(tx *gorm.DB, m *model.GroupMembership) error {
	if err := tx.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkg.ErrAlreadyMember
		}
		return err
	}
	return insertOutbox(tx, "member_added", "group", m.GroupID, m.UserID, string(m.Role))
}

func (r *GroupMemberRepository) Find(userID, groupID uint64) (*model.GroupMembership, error) {
	var m model.GroupMembership
	err := r.DB.Where("user_id = ? AND group_id = ?", userID, groupID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &m, err
}

func (r *GroupMemberRepository) Exists(userID, groupID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.GroupMembership{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupMemberRepository) ListByGroup(groupID uint64) ([]model.GroupMembership, error) {
	var list []model.GroupMembership
	err := r.DB.Where("group_id = ?", groupID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *GroupMemberRepository) ListByUser(userID uint64) ([]model.GroupMembership, error) {
	var list []model.GroupMembership
	err := r.DB.Where("user_id = ?", userID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *GroupMemberRepository) UpdateRole(m *model.GroupMembership, role model.MemberRole) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Update("role", role).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "role_changed", "group", m.GroupID, m.UserID, string(role))
	})
}

func (r *GroupMemberRepository) Remove(m *model.GroupMembership) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(m).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "member_removed", "group", m.GroupID, m.UserID, string(m.Role))
	})
}
