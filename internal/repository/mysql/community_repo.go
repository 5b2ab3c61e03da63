package mysql

import (
	"errors"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

// Create 同一事务内写入社区和创建者的 OWNER 成员记录（自举，不走权限检查）
func (r *CommunityRepository) Create(c *model.Community) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		m := &model.CommunityMembership{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
			Role:        model.RoleOwner,
		}
		mRepo := &CommunityMemberRepository{DB: tx}
		return mRepo.addTx(tx, m)
	})
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &community, err
}

func (r *CommunityRepository) List(offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *CommunityRepository) ListByCreator(userID uint64) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Where("creator_id = ?", userID).Order("id desc").Find(&list).Error
	return list, err
}

func (r *CommunityRepository) SearchByName(term string) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Where("name LIKE ?", "%"+term+"%").Order("id desc").Find(&list).Error
	return list, err
}

func (r *CommunityRepository) Save(c *model.Community) error {
	return r.DB.Save(c).Error
}

// Delete 级联删除成员记录
func (r *CommunityRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", id).Delete(&model.CommunityMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Community{}, id).Error
	})
}
