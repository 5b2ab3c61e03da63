package service

import (
	"time"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
)

// 内存版仓储，行为对齐 mysql 实现：找不到返回 pkg.ErrNotFound，
// 唯一键冲突返回 pkg.ErrAlreadyMember，Create 同步写创建者 OWNER 记录

type memState struct {
	users            map[uint64]*model.User
	communities      map[uint64]*model.Community
	communityMembers map[uint64]*model.CommunityMembership
	groups           map[uint64]*model.Group
	groupMembers     map[uint64]*model.GroupMembership
	events           map[uint64]*model.Event
	attendance       map[uint64]*model.EventAttendance
	nextID           uint64
}

func newMemState() *memState {
	return &memState{
		users:            make(map[uint64]*model.User),
		communities:      make(map[uint64]*model.Community),
		communityMembers: make(map[uint64]*model.CommunityMembership),
		groups:           make(map[uint64]*model.Group),
		groupMembers:     make(map[uint64]*model.GroupMembership),
		events:           make(map[uint64]*model.Event),
		attendance:       make(map[uint64]*model.EventAttendance),
	}
}

func (st *memState) id() uint64 {
	st.nextID++
	return st.nextID
}

type memUsers struct{ st *memState }

func (m *memUsers) Create(user *model.User) error {
	user.ID = m.st.id()
	m.st.users[user.ID] = user
	return nil
}

func (m *memUsers) FindByID(id uint64) (*model.User, error) {
	u, ok := m.st.users[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) FindByUsername(username string) (*model.User, error) {
	for _, u := range m.st.users {
		if u.Username == username || u.Email == username {
			return u, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (m *memUsers) FindByEmail(email string) (*model.User, error) {
	for _, u := range m.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (m *memUsers) Exists(id uint64) (bool, error) {
	_, ok := m.st.users[id]
	return ok, nil
}

func (m *memUsers) UpdatePassword(user *model.User, newPassword string) error {
	user.Password = newPassword
	return nil
}

func (m *memUsers) Activate(user *model.User) error {
	user.Activated = true
	return nil
}

type memCommunityMembers struct{ st *memState }

func (m *memCommunityMembers) Add(mem *model.CommunityMembership) error {
	for _, existing := range m.st.communityMembers {
		if existing.UserID == mem.UserID && existing.CommunityID == mem.CommunityID {
			return pkg.ErrAlreadyMember
		}
	}
	mem.ID = m.st.id()
	mem.CreatedAt = time.Now()
	m.st.communityMembers[mem.ID] = mem
	return nil
}

func (m *memCommunityMembers) Find(userID, communityID uint64) (*model.CommunityMembership, error) {
	for _, mem := range m.st.communityMembers {
		if mem.UserID == userID && mem.CommunityID == communityID {
			return mem, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (m *memCommunityMembers) Exists(userID, communityID uint64) (bool, error) {
	_, err := m.Find(userID, communityID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memCommunityMembers) ListByCommunity(communityID uint64) ([]model.CommunityMembership, error) {
	var list []model.CommunityMembership
	for _, mem := range m.st.communityMembers {
		if mem.CommunityID == communityID {
			list = append(list, *mem)
		}
	}
	return list, nil
}

func (m *memCommunityMembers) ListByUser(userID uint64) ([]model.CommunityMembership, error) {
	var list []model.CommunityMembership
	for _, mem := range m.st.communityMembers {
		if mem.UserID == userID {
			list = append(list, *mem)
		}
	}
	return list, nil
}

func (m *memCommunityMembers) UpdateRole(mem *model.CommunityMembership, role model.MemberRole) error {
	m.st.communityMembers[mem.ID].Role = role
	return nil
}

func (m *memCommunityMembers) Remove(mem *model.CommunityMembership) error {
	delete(m.st.communityMembers, mem.ID)
	return nil
}

type memCommunities struct {
	st      *memState
	members *memCommunityMembers
}

func (m *memCommunities) Create(c *model.Community) error {
	c.ID = m.st.id()
	m.st.communities[c.ID] = c
	return m.members.Add(&model.CommunityMembership{
		CommunityID: c.ID,
		UserID:      c.CreatorID,
		Role:        model.RoleOwner,
	})
}

func (m *memCommunities) FindByID(id uint64) (*model.Community, error) {
	c, ok := m.st.communities[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return c, nil
}

func (m *memCommunities) List(offset, limit int) ([]model.Community, error) {
	var list []model.Community
	for _, c := range m.st.communities {
		list = append(list, *c)
	}
	return list, nil
}

func (m *memCommunities) ListByCreator(userID uint64) ([]model.Community, error) {
	var list []model.Community
	for _, c := range m.st.communities {
		if c.CreatorID == userID {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (m *memCommunities) SearchByName(term string) ([]model.Community, error) {
	return m.List(0, 0)
}

func (m *memCommunities) Save(c *model.Community) error {
	m.st.communities[c.ID] = c
	return nil
}

func (m *memCommunities) Delete(id uint64) error {
	for mid, mem := range m.st.communityMembers {
		if mem.CommunityID == id {
			delete(m.st.communityMembers, mid)
		}
	}
	delete(m.st.communities, id)
	return nil
}

type memGroupMembers struct{ st *memState }

func (m *memGroupMembers) Add(mem *model.GroupMembership) error {
	for _, existing := range m.st.groupMembers {
		if existing.UserID == mem.UserID && existing.GroupID == mem.GroupID {
			return pkg.ErrAlreadyMember
		}
	}
	mem.ID = m.st.id()
	mem.CreatedAt = time.Now()
	m.st.groupMembers[mem.ID] = mem
	return nil
}

func (m *memGroupMembers) Find(userID, groupID uint64) (*model.GroupMembership, error) {
	for _, mem := range m.st.groupMembers {
		if mem.UserID == userID && mem.GroupID == groupID {
			return mem, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (m *memGroupMembers) Exists(userID, groupID uint64) (bool, error) {
	_, err := m.Find(userID, groupID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memGroupMembers) ListByGroup(groupID uint64) ([]model.GroupMembership, error) {
	var list []model.GroupMembership
	for _, mem := range m.st.groupMembers {
		if mem.GroupID == groupID {
			list = append(list, *mem)
		}
	}
	return list, nil
}

func (m *memGroupMembers) ListByUser(userID uint64) ([]model.GroupMembership, error) {
	var list []model.GroupMembership
	for _, mem := range m.st.groupMembers {
		if mem.UserID == userID {
			list = append(list, *mem)
		}
	}
	return list, nil
}

func (m *memGroupMembers) UpdateRole(mem *model.GroupMembership, role model.MemberRole) error {
	m.st.groupMembers[mem.ID].Role = role
	return nil
}

func (m *memGroupMembers) Remove(mem *model.GroupMembership) error {
	delete(m.st.groupMembers, mem.ID)
	return nil
}

type memGroups struct {
	st      *memState
	members *memGroupMembers
}

func (m *memGroups) Create(g *model.Group) error {
	g.ID = m.st.id()
	m.st.groups[g.ID] = g
	return m.members.Add(&model.GroupMembership{
		GroupID: g.ID,
		UserID:  g.CreatorID,
		Role:    model.RoleOwner,
	})
}

func (m *memGroups) FindByID(id uint64) (*model.Group, error) {
	g, ok := m.st.groups[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return g, nil
}

func (m *memGroups) ListByCommunity(communityID uint64) ([]model.Group, error) {
	var list []model.Group
	for _, g := range m.st.groups {
		if g.CommunityID == communityID {
			list = append(list, *g)
		}
	}
	return list, nil
}

func (m *memGroups) ListByCreator(userID uint64) ([]model.Group, error) {
	var list []model.Group
	for _, g := range m.st.groups {
		if g.CreatorID == userID {
			list = append(list, *g)
		}
	}
	return list, nil
}

func (m *memGroups) SearchInCommunity(communityID uint64, term string) ([]model.Group, error) {
	return m.ListByCommunity(communityID)
}

func (m *memGroups) Save(g *model.Group) error {
	m.st.groups[g.ID] = g
	return nil
}

func (m *memGroups) Delete(id uint64) error {
	for mid, mem := range m.st.groupMembers {
		if mem.GroupID == id {
			delete(m.st.groupMembers, mid)
		}
	}
	delete(m.st.groups, id)
	return nil
}

type memEvents struct{ st *memState }

func (m *memEvents) Create(e *model.Event) error {
	e.ID = m.st.id()
	m.st.events[e.ID] = e
	return nil
}

func (m *memEvents) FindByID(id uint64) (*model.Event, error) {
	e, ok := m.st.events[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return e, nil
}

func (m *memEvents) ListByCommunity(communityID uint64) ([]model.Event, error) {
	var list []model.Event
	for _, e := range m.st.events {
		if e.CommunityID != nil && *e.CommunityID == communityID {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (m *memEvents) ListByGroup(groupID uint64) ([]model.Event, error) {
	var list []model.Event
	for _, e := range m.st.events {
		if e.GroupID != nil && *e.GroupID == groupID {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (m *memEvents) ListUpcomingByCommunity(communityID uint64, from time.Time) ([]model.Event, error) {
	var list []model.Event
	for _, e := range m.st.events {
		if e.CommunityID != nil && *e.CommunityID == communityID && !e.EventDate.Before(from) {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (m *memEvents) ListUpcomingByGroup(groupID uint64, from time.Time) ([]model.Event, error) {
	var list []model.Event
	for _, e := range m.st.events {
		if e.GroupID != nil && *e.GroupID == groupID && !e.EventDate.Before(from) {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (m *memEvents) Save(e *model.Event) error {
	m.st.events[e.ID] = e
	return nil
}

func (m *memEvents) Delete(id uint64) error {
	for aid, a := range m.st.attendance {
		if a.EventID == id {
			delete(m.st.attendance, aid)
		}
	}
	delete(m.st.events, id)
	return nil
}

type memAttendance struct{ st *memState }

func (m *memAttendance) InitPending(a *model.EventAttendance) error {
	for _, existing := range m.st.attendance {
		if existing.EventID == a.EventID && existing.UserID == a.UserID && existing.GroupID == a.GroupID {
			return nil
		}
	}
	a.ID = m.st.id()
	m.st.attendance[a.ID] = a
	return nil
}

func (m *memAttendance) Find(eventID, userID, groupID uint64) (*model.EventAttendance, error) {
	for _, a := range m.st.attendance {
		if a.EventID == eventID && a.UserID == userID && a.GroupID == groupID {
			return a, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (m *memAttendance) ListByEvent(eventID uint64) ([]model.EventAttendance, error) {
	var list []model.EventAttendance
	for _, a := range m.st.attendance {
		if a.EventID == eventID {
			list = append(list, *a)
		}
	}
	return list, nil
}

func (m *memAttendance) ListByEventAndGroup(eventID, groupID uint64) ([]model.EventAttendance, error) {
	var list []model.EventAttendance
	for _, a := range m.st.attendance {
		if a.EventID == eventID && a.GroupID == groupID {
			list = append(list, *a)
		}
	}
	return list, nil
}

func (m *memAttendance) Save(a *model.EventAttendance) error {
	if a.ID == 0 {
		a.ID = m.st.id()
	}
	m.st.attendance[a.ID] = a
	return nil
}

func (m *memAttendance) CountByEvent(eventID uint64) (int64, error) {
	var count int64
	for _, a := range m.st.attendance {
		if a.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (m *memAttendance) CountByStatus(eventID uint64, status model.AttendanceStatus) (int64, error) {
	var count int64
	for _, a := range m.st.attendance {
		if a.EventID == eventID && a.Status == status {
			count++
		}
	}
	return count, nil
}

// fixture 组装全套 service 供测试使用
type fixture struct {
	st               *memState
	users            *memUsers
	communities      *memCommunities
	communityMembers *memCommunityMembers
	groups           *memGroups
	groupMembers     *memGroupMembers
	events           *memEvents
	attendance       *memAttendance
	perms            *Permission
	communitySvc     *CommunityService
	groupSvc         *GroupService
	eventSvc         *EventService
}

func newFixture() *fixture {
	st := newMemState()
	f := &fixture{
		st:               st,
		users:            &memUsers{st: st},
		communityMembers: &memCommunityMembers{st: st},
		groupMembers:     &memGroupMembers{st: st},
		events:           &memEvents{st: st},
		attendance:       &memAttendance{st: st},
	}
	f.communities = &memCommunities{st: st, members: f.communityMembers}
	f.groups = &memGroups{st: st, members: f.groupMembers}
	f.perms = NewPermission(f.communityMembers, f.groupMembers, f.events)
	f.communitySvc = NewCommunityService(f.users, f.communities, f.communityMembers, f.perms)
	f.groupSvc = NewGroupService(f.users, f.groups, f.groupMembers, f.communities, f.communityMembers, f.perms)
	f.eventSvc = NewEventService(f.users, f.events, f.attendance, f.groups, f.communities, f.groupMembers, f.perms)
	return f
}

func (f *fixture) addUser(username string) *model.User {
	u := &model.User{
		Username:  username,
		Password:  "x",
		Email:     username + "@example.com",
		Activated: true,
	}
	_ = f.users.Create(u)
	return u
}
