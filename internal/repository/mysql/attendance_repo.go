package mysql

import (
	"errors"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// InitPending 幂等插入：(event_id, user_id, group_id) 已存在则不动已有状态
func (r *AttendanceRepository) InitPending(a *model.EventAttendance) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}, {Name: "group_id"}},
		DoNothing: true,
	}).Create(a).Error
}

func (r *AttendanceRepository) Find(eventID, userID, groupID uint64) (*model.EventAttendance, error) {
	var a model.EventAttendance
	err := r.DB.Where("event_id = ? AND user_id = ? AND group_id = ?", eventID, userID, groupID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &a, err
}

func (r *AttendanceRepository) ListByEvent(eventID uint64) ([]model.EventAttendance, error) {
	var list []model.EventAttendance
	err := r.DB.Where("event_id = ?", eventID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *AttendanceRepository) ListByEventAndGroup(eventID, groupID uint64) ([]model.EventAttendance, error) {
	var list []model.EventAttendance
	err := r.DB.Where("event_id = ? AND group_id = ?", eventID, groupID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *AttendanceRepository) Save(a *model.EventAttendance) error {
	return r.DB.Save(a).Error
}

func (r *AttendanceRepository) CountByEvent(eventID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.EventAttendance{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *AttendanceRepository) CountByStatus(eventID uint64, status model.AttendanceStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.EventAttendance{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}
