package model

import "time"

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index"`
	Name        string `gorm:"index;size:64;not null"`
	Description string `gorm:"type:text"`
	CreatorID   uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GroupMembership (user_id, group_id) 唯一；加入前必须已是所属社区成员
type GroupMembership struct {
	ID        uint64     `gorm:"primaryKey"`
	GroupID   uint64     `gorm:"not null;index;uniqueIndex:uk_group_user"`
	UserID    uint64     `gorm:"not null;index;uniqueIndex:uk_group_user"`
	Role      MemberRole `gorm:"size:16;not null;default:'MEMBER'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
