package mysql

import (
	"errors"
	"time"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(e *model.Event) error {
	return r.DB.Create(e).Error
}

func (r *EventRepository) FindByID(id uint64) (*model.Event, error) {
	var event model.Event
	err := r.DB.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &event, err
}

func (r *EventRepository) ListByCommunity(communityID uint64) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Where("community_id = ?", communityID).Order("event_date desc").Find(&list).Error
	return list, err
}

func (r *EventRepository) ListByGroup(groupID uint64) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Where("group_id = ?", groupID).Order("event_date desc").Find(&list).Error
	return list, err
}

func (r *EventRepository) ListUpcomingByCommunity(communityID uint64, from time.Time) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Where("community_id = ? AND event_date >= ?", communityID, from).
		Order("event_date asc").Find(&list).Error
	return list, err
}

func (r *EventRepository) ListUpcomingByGroup(groupID uint64, from time.Time) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Where("group_id = ? AND event_date >= ?", groupID, from).
		Order("event_date asc").Find(&list).Error
	return list, err
}

func (r *EventRepository) Save(e *model.Event) error {
	return r.DB.Save(e).Error
}

// Delete 出勤记录随活动一起删除
func (r *EventRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventAttendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
}
