package service

import (
	"context"
	"time"

	"Orbit_Community/internal/model"
)

// service 层只依赖这里的仓储接口，mysql 包提供实现，
// 找不到记录统一返回 pkg.ErrNotFound，唯一键冲突返回 pkg.ErrAlreadyMember

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Exists(id uint64) (bool, error)
	UpdatePassword(user *model.User, newPassword string) error
	Activate(user *model.User) error
}

type CommunityStore interface {
	// Create 同事务写入社区与创建者 OWNER 成员记录
	Create(c *model.Community) error
	FindByID(id uint64) (*model.Community, error)
	List(offset, limit int) ([]model.Community, error)
	ListByCreator(userID uint64) ([]model.Community, error)
	SearchByName(term string) ([]model.Community, error)
	Save(c *model.Community) error
	Delete(id uint64) error
}

type CommunityMemberStore interface {
	Add(m *model.CommunityMembership) error
	Find(userID, communityID uint64) (*model.CommunityMembership, error)
	Exists(userID, communityID uint64) (bool, error)
	ListByCommunity(communityID uint64) ([]model.CommunityMembership, error)
	ListByUser(userID uint64) ([]model.CommunityMembership, error)
	UpdateRole(m *model.CommunityMembership, role model.MemberRole) error
	Remove(m *model.CommunityMembership) error
}

type GroupStore interface {
	Create(g *model.Group) error
	FindByID(id uint64) (*model.Group, error)
	ListByCommunity(communityID uint64) ([]model.Group, error)
	ListByCreator(userID uint64) ([]model.Group, error)
	SearchInCommunity(communityID uint64, term string) ([]model.Group, error)
	Save(g *model.Group) error
	Delete(id uint64) error
}

type GroupMemberStore interface {
	Add(m *model.GroupMembership) error
	Find(userID, groupID uint64) (*model.GroupMembership, error)
	Exists(userID, groupID uint64) (bool, error)
	ListByGroup(groupID uint64) ([]model.GroupMembership, error)
	ListByUser(userID uint64) ([]model.GroupMembership, error)
	UpdateRole(m *model.GroupMembership, role model.MemberRole) error
	Remove(m *model.GroupMembership) error
}

type EventStore interface {
	Create(e *model.Event) error
	FindByID(id uint64) (*model.Event, error)
	ListByCommunity(communityID uint64) ([]model.Event, error)
	ListByGroup(groupID uint64) ([]model.Event, error)
	ListUpcomingByCommunity(communityID uint64, from time.Time) ([]model.Event, error)
	ListUpcomingByGroup(groupID uint64, from time.Time) ([]model.Event, error)
	Save(e *model.Event) error
	Delete(id uint64) error
}

type AttendanceStore interface {
	// InitPending 幂等插入，已有记录保持原状态
	InitPending(a *model.EventAttendance) error
	Find(eventID, userID, groupID uint64) (*model.EventAttendance, error)
	ListByEvent(eventID uint64) ([]model.EventAttendance, error)
	ListByEventAndGroup(eventID, groupID uint64) ([]model.EventAttendance, error)
	Save(a *model.EventAttendance) error
	CountByEvent(eventID uint64) (int64, error)
	CountByStatus(eventID uint64, status model.AttendanceStatus) (int64, error)
}

type OutboxStore interface {
	List(ctx context.Context, batchSize int) ([]model.MembershipOutbox, error)
	RetryUpdate(ctx context.Context, id uint64) error
	SuccessUpdate(ctx context.Context, id uint64) error
}
