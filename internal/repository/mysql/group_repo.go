package mysql

import (
	"errors"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

// Create 同一事务内写入小组和创建者的 OWNER 成员记录
func (r *GroupRepository) Create(g *model.Group) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		m := &model.GroupMembership{
			GroupID: g.ID,
			UserID:  g.CreatorID,
			Role:    model.RoleOwner,
		}
		mRepo := &GroupMemberRepository{DB: tx}
		return mRepo.addTx(tx, m)
	})
}

func (r *GroupRepository) FindByID(id uint64) (*model.Group, error) {
	var group model.Group
	err := r.DB.First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &group, err
}

func (r *GroupRepository) ListByCommunity(communityID uint64) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.Where("community_id = ?", communityID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *GroupRepository) ListByCreator(userID uint64) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.Where("creator_id = ?", userID).Order("id desc").Find(&list).Error
	return list, err
}

func (r *GroupRepository) SearchInCommunity(communityID uint64, term string) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.Where("community_id = ? AND name LIKE ?", communityID, "%"+term+"%").
		Order("id desc").Find(&list).Error
	return list, err
}

func (r *GroupRepository) Save(g *model.Group) error {
	return r.DB.Save(g).Error
}

func (r *GroupRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&model.GroupMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, id).Error
	})
}
