package service

import (
	"errors"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
)

// Permission 角色判定的唯一入口，其他 service 一律委托这里，
// 不在各处重复比较 OWNER/ADMIN/MEMBER
type Permission struct {
	communityMembers CommunityMemberStore
	groupMembers     GroupMemberStore
	events           EventStore
}

func NewPermission(communityMembers CommunityMemberStore, groupMembers GroupMemberStore, events EventStore) *Permission {
	return &Permission{
		communityMembers: communityMembers,
		groupMembers:     groupMembers,
		events:           events,
	}
}

// CommunityRole 返回用户在社区的角色，非成员时 ok=false
func (p *Permission) CommunityRole(userID, communityID uint64) (model.MemberRole, bool, error) {
	m, err := p.communityMembers.Find(userID, communityID)
	if errors.Is(err, pkg.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return m.Role, true, nil
}

// GroupRole 返回用户在小组的角色，非成员时 ok=false
func (p *Permission) GroupRole(userID, groupID uint64) (model.MemberRole, bool, error) {
	m, err := p.groupMembers.Find(userID, groupID)
	if errors.Is(err, pkg.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return m.Role, true, nil
}

func (p *Permission) CanManageCommunity(userID, communityID uint64) (bool, error) {
	role, ok, err := p.CommunityRole(userID, communityID)
	if err != nil || !ok {
		return false, err
	}
	return role == model.RoleOwner || role == model.RoleAdmin, nil
}

func (p *Permission) IsCommunityOwner(userID, communityID uint64) (bool, error) {
	role, ok, err := p.CommunityRole(userID, communityID)
	if err != nil || !ok {
		return false, err
	}
	return role == model.RoleOwner, nil
}

func (p *Permission) CanManageGroup(userID, groupID uint64) (bool, error) {
	role, ok, err := p.GroupRole(userID, groupID)
	if err != nil || !ok {
		return false, err
	}
	return role == model.RoleOwner || role == model.RoleAdmin, nil
}

func (p *Permission) IsGroupOwner(userID, groupID uint64) (bool, error) {
	role, ok, err := p.GroupRole(userID, groupID)
	if err != nil || !ok {
		return false, err
	}
	return role == model.RoleOwner, nil
}

// CanManageEvent 创建者永远可管理（即使已退出小组）；
// 小组活动额外放行小组的 OWNER/ADMIN
func (p *Permission) CanManageEvent(userID, eventID uint64) (bool, error) {
	event, err := p.events.FindByID(eventID)
	if err != nil {
		return false, err
	}
	if event.CreatorID == userID {
		return true, nil
	}
	if event.GroupID != nil {
		return p.CanManageGroup(userID, *event.GroupID)
	}
	return false, nil
}
