package model

import "time"

// Event 活动。GroupID 非空时 CommunityID 必须等于该小组的所属社区
type Event struct {
	ID                uint64 `gorm:"primaryKey"`
	Title             string `gorm:"size:128;not null"`
	Description       string `gorm:"type:text"`
	CommunityID       *uint64 `gorm:"index"`
	GroupID           *uint64 `gorm:"index"`
	CreatorID         uint64  `gorm:"not null;index"`
	EventDate         time.Time
	EventTime         string `gorm:"size:8"`
	Location          string `gorm:"size:255"`
	AttendanceEnabled bool   `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EventAttendance (event_id, user_id, group_id) 唯一，只更新不重复插入
type EventAttendance struct {
	ID        uint64           `gorm:"primaryKey"`
	EventID   uint64           `gorm:"not null;index;uniqueIndex:uk_event_user_group"`
	UserID    uint64           `gorm:"not null;index;uniqueIndex:uk_event_user_group"`
	GroupID   uint64           `gorm:"not null;index;uniqueIndex:uk_event_user_group"`
	Status    AttendanceStatus `gorm:"size:16;not null;default:'PENDING'"`
	MarkedBy  *uint64
	MarkedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
