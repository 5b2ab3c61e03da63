package model

import "time"

type Community struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"index;size:64;not null"`
	Description string `gorm:"type:text"`
	CreatorID   uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CommunityMembership (user_id, community_id) 唯一，角色见 MemberRole
type CommunityMembership struct {
	ID          uint64     `gorm:"primaryKey"`
	CommunityID uint64     `gorm:"not null;index;uniqueIndex:uk_community_user"`
	UserID      uint64     `gorm:"not null;index;uniqueIndex:uk_community_user"`
	Role        MemberRole `gorm:"size:16;not null;default:'MEMBER'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
