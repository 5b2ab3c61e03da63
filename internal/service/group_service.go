package service

import (
	"fmt"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
)

type GroupService struct {
	users            UserStore
	repo             GroupStore
	members          GroupMemberStore
	communities      CommunityStore
	communityMembers CommunityMemberStore
	perms            *Permission
}

func NewGroupService(users UserStore, repo GroupStore, members GroupMemberStore,
	communities CommunityStore, communityMembers CommunityMemberStore, perms *Permission) *GroupService {
	return &GroupService{
		users:            users,
		repo:             repo,
		members:          members,
		communities:      communities,
		communityMembers: communityMembers,
		perms:            perms,
	}
}

// Create 创建者必须已是所属社区成员；OWNER 记录由仓储同事务写入
func (s *GroupService) Create(creatorID, communityID uint64, name, desc string) (*model.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name required", pkg.ErrInvalidState)
	}
	if _, err := s.users.FindByID(creatorID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, creatorID)
	}
	if _, err := s.communities.FindByID(communityID); err != nil {
		return nil, err
	}

	exists, err := s.communityMembers.Exists(creatorID, communityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: must be a member of the community to create a group", pkg.ErrPrerequisiteNotMet)
	}

	group := &model.Group{
		CommunityID: communityID,
		Name:        name,
		Description: desc,
		CreatorID:   creatorID,
	}
	if err := s.repo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) Get(groupID uint64) (*model.Group, error) {
	return s.repo.FindByID(groupID)
}

func (s *GroupService) ListByCommunity(communityID uint64) ([]model.Group, error) {
	if _, err := s.communities.FindByID(communityID); err != nil {
		return nil, err
	}
	return s.repo.ListByCommunity(communityID)
}

func (s *GroupService) ListByCreator(userID uint64) ([]model.Group, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, userID)
	}
	return s.repo.ListByCreator(userID)
}

// ListUserGroups 用户已加入的小组
func (s *GroupService) ListUserGroups(userID uint64) ([]model.Group, error) {
	memberships, err := s.members.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	list := make([]model.Group, 0, len(memberships))
	for _, m := range memberships {
		g, err := s.repo.FindByID(m.GroupID)
		if err != nil {
			return nil, err
		}
		list = append(list, *g)
	}
	return list, nil
}

func (s *GroupService) SearchInCommunity(communityID uint64, term string) ([]model.Group, error) {
	if _, err := s.communities.FindByID(communityID); err != nil {
		return nil, err
	}
	return s.repo.SearchInCommunity(communityID, term)
}

func (s *GroupService) Update(groupID, userID uint64, name, desc *string) (*model.Group, error) {
	group, err := s.repo.FindByID(groupID)
	if err != nil {
		return nil, err
	}
	ok, err := s.perms.CanManageGroup(userID, groupID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no permission to update this group", pkg.ErrForbidden)
	}

	if name != nil && *name != "" {
		group.Name = *name
	}
	if desc != nil {
		group.Description = *desc
	}
	if err := s.repo.Save(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete 仅 OWNER 可删
func (s *GroupService) Delete(groupID, userID uint64) error {
	if _, err := s.repo.FindByID(groupID); err != nil {
		return err
	}
	ok, err := s.perms.IsGroupOwner(userID, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: only the owner can delete this group", pkg.ErrForbidden)
	}
	return s.repo.Delete(groupID)
}

// AddMember 操作者须为小组 OWNER/ADMIN；目标用户必须已是所属社区成员
func (s *GroupService) AddMember(groupID, actingUserID, targetUserID uint64, role model.MemberRole) (*model.GroupMembership, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", pkg.ErrInvalidState, role)
	}
	group, err := s.repo.FindByID(groupID)
	if err != nil {
		return nil, err
	}
	ok, err := s.perms.CanManageGroup(actingUserID, groupID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no permission to add members", pkg.ErrForbidden)
	}
	if _, err := s.users.FindByID(targetUserID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, targetUserID)
	}

	// 前置条件：先是社区成员，才能进社区下的小组
	inCommunity, err := s.communityMembers.Exists(targetUserID, group.CommunityID)
	if err != nil {
		return nil, err
	}
	if !inCommunity {
		return nil, fmt.Errorf("%w: user must be a member of the community to join this group", pkg.ErrPrerequisiteNotMet)
	}

	exists, err := s.members.Exists(targetUserID, groupID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: user %d in group %d", pkg.ErrAlreadyMember, targetUserID, groupID)
	}

	m := &model.GroupMembership{
		GroupID: groupID,
		UserID:  targetUserID,
		Role:    role,
	}
	if err := s.members.Add(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *GroupService) Members(groupID uint64) ([]model.GroupMembership, error) {
	if _, err := s.repo.FindByID(groupID); err != nil {
		return nil, err
	}
	return s.members.ListByGroup(groupID)
}

func (s *GroupService) Membership(groupID, userID uint64) (*model.GroupMembership, error) {
	if _, err := s.repo.FindByID(groupID); err != nil {
		return nil, err
	}
	return s.members.Find(userID, groupID)
}

// UpdateMemberRole 仅 OWNER 可改角色；OWNER 自身的角色永不可改
func (s *GroupService) UpdateMemberRole(groupID, actingUserID, memberUserID uint64, newRole model.MemberRole) (*model.GroupMembership, error) {
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", pkg.ErrInvalidState, newRole)
	}
	if _, err := s.repo.FindByID(groupID); err != nil {
		return nil, err
	}
	ok, err := s.perms.IsGroupOwner(actingUserID, groupID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: only the owner can change member roles", pkg.ErrForbidden)
	}

	m, err := s.members.Find(memberUserID, groupID)
	if err != nil {
		return nil, err
	}
	if m.Role == model.RoleOwner {
		return nil, fmt.Errorf("%w: cannot change the owner's role", pkg.ErrImmutableOwner)
	}

	if err := s.members.UpdateRole(m, newRole); err != nil {
		return nil, err
	}
	m.Role = newRole
	return m, nil
}

// RemoveMember OWNER/ADMIN 可移除成员；OWNER 自身永不可被移除
func (s *GroupService) RemoveMember(groupID, actingUserID, memberUserID uint64) error {
	if _, err := s.repo.FindByID(groupID); err != nil {
		return err
	}
	ok, err := s.perms.CanManageGroup(actingUserID, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no permission to remove members", pkg.ErrForbidden)
	}

	m, err := s.members.Find(memberUserID, groupID)
	if err != nil {
		return err
	}
	if m.Role == model.RoleOwner {
		return fmt.Errorf("%w: cannot remove the owner from the group", pkg.ErrImmutableOwner)
	}
	return s.members.Remove(m)
}
