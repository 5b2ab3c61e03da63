package service

import (
	"fmt"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
)

type CommunityService struct {
	users   UserStore
	repo    CommunityStore
	members CommunityMemberStore
	perms   *Permission
}

func NewCommunityService(users UserStore, repo CommunityStore, members CommunityMemberStore, perms *Permission) *CommunityService {
	return &CommunityService{
		users:   users,
		repo:    repo,
		members: members,
		perms:   perms,
	}
}

func (s *CommunityService) Create(creatorID uint64, name, desc string) (*model.Community, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: community name required", pkg.ErrInvalidState)
	}
	if _, err := s.users.FindByID(creatorID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, creatorID)
	}

	community := &model.Community{
		Name:        name,
		Description: desc,
		CreatorID:   creatorID,
	}
	// 创建者 OWNER 记录由仓储同事务写入
	if err := s.repo.Create(community); err != nil {
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) Get(communityID uint64) (*model.Community, error) {
	return s.repo.FindByID(communityID)
}

func (s *CommunityService) List(page, size int) ([]model.Community, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	offset := (page - 1) * size
	return s.repo.List(offset, size)
}

func (s *CommunityService) ListByCreator(userID uint64) ([]model.Community, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, userID)
	}
	return s.repo.ListByCreator(userID)
}

// ListUserCommunities 用户已加入的社区
func (s *CommunityService) ListUserCommunities(userID uint64) ([]model.Community, error) {
	memberships, err := s.members.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	list := make([]model.Community, 0, len(memberships))
	for _, m := range memberships {
		c, err := s.repo.FindByID(m.CommunityID)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, nil
}

func (s *CommunityService) Search(term string) ([]model.Community, error) {
	return s.repo.SearchByName(term)
}

func (s *CommunityService) Update(communityID, userID uint64, name, desc *string) (*model.Community, error) {
	community, err := s.repo.FindByID(communityID)
	if err != nil {
		return nil, err
	}
	ok, err := s.perms.CanManageCommunity(userID, communityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no permission to update this community", pkg.ErrForbidden)
	}

	if name != nil && *name != "" {
		community.Name = *name
	}
	if desc != nil {
		community.Description = *desc
	}
	if err := s.repo.Save(community); err != nil {
		return nil, err
	}
	return community, nil
}

// Delete 仅 OWNER 可删
func (s *CommunityService) Delete(communityID, userID uint64) error {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return err
	}
	ok, err := s.perms.IsCommunityOwner(userID, communityID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: only the owner can delete this community", pkg.ErrForbidden)
	}
	return s.repo.Delete(communityID)
}

// AddMember 操作者须为 OWNER/ADMIN；(user, community) 唯一由数据库约束兜底
func (s *CommunityService) AddMember(communityID, actingUserID, targetUserID uint64, role model.MemberRole) (*model.CommunityMembership, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", pkg.ErrInvalidState, role)
	}
	if _, err := s.repo.FindByID(communityID); err != nil {
		return nil, err
	}
	ok, err := s.perms.CanManageCommunity(actingUserID, communityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no permission to add members", pkg.ErrForbidden)
	}
	if _, err := s.users.FindByID(targetUserID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, targetUserID)
	}

	exists, err := s.members.Exists(targetUserID, communityID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: user %d in community %d", pkg.ErrAlreadyMember, targetUserID, communityID)
	}

	m := &model.CommunityMembership{
		CommunityID: communityID,
		UserID:      targetUserID,
		Role:        role,
	}
	if err := s.members.Add(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CommunityService) Members(communityID uint64) ([]model.CommunityMembership, error) {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return nil, err
	}
	return s.members.ListByCommunity(communityID)
}

func (s *CommunityService) Membership(communityID, userID uint64) (*model.CommunityMembership, error) {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return nil, err
	}
	return s.members.Find(userID, communityID)
}

// UpdateMemberRole 仅 OWNER 可改角色；OWNER 自身的角色永不可改。
// 权限检查先于目标成员查询，非 OWNER 操作者先收到 Forbidden
func (s *CommunityService) UpdateMemberRole(communityID, actingUserID, memberUserID uint64, newRole model.MemberRole) (*model.CommunityMembership, error) {
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", pkg.ErrInvalidState, newRole)
	}
	if _, err := s.repo.FindByID(communityID); err != nil {
		return nil, err
	}
	ok, err := s.perms.IsCommunityOwner(actingUserID, communityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: only the owner can change member roles", pkg.ErrForbidden)
	}

	m, err := s.members.Find(memberUserID, communityID)
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
func (s *CommunityService) RemoveMember(communityID, actingUserID, memberUserID uint64) error {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return err
	}
	ok, err := s.perms.CanManageCommunity(actingUserID, communityID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no permission to remove members", pkg.ErrForbidden)
	}

	m, err := s.members.Find(memberUserID, communityID)
	if err != nil {
		return err
	}
	if m.Role == model.RoleOwner {
		return fmt.Errorf("%w: cannot remove the owner from the community", pkg.ErrImmutableOwner)
	}
	return s.members.Remove(m)
}
