package service

import (
	"testing"

	"Orbit_Community/internal/model"
)

func TestPermission_RoleResolution(t *testing.T) {
	f := newFixture()
	a := f.addUser("alice")
	b := f.addUser("bob")
	c, _ := f.communitySvc.Create(a.ID, "gophers", "")
	_, _ = f.communitySvc.AddMember(c.ID, a.ID, b.ID, model.RoleAdmin)

	role, ok, err := f.perms.CommunityRole(a.ID, c.ID)
	if err != nil || !ok || role != model.RoleOwner {
		t.Errorf("expected OWNER, got %s ok=%v err=%v", role, ok, err)
	}
	role, ok, _ = f.perms.CommunityRole(b.ID, c.ID)
	if !ok || role != model.RoleAdmin {
		t.Errorf("expected ADMIN, got %s ok=%v", role, ok)
	}

	stranger := f.addUser("carol")
	_, ok, err = f.perms.CommunityRole(stranger.ID, c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("non-member must resolve to no role")
	}
}

func TestPermission_CanManage(t *testing.T) {
	f := newFixture()
	a := f.addUser("alice")
	b := f.addUser("bob")
	d := f.addUser("dave")
	c, _ := f.communitySvc.Create(a.ID, "gophers", "")
	_, _ = f.communitySvc.AddMember(c.ID, a.ID, b.ID, model.RoleAdmin)
	_, _ = f.communitySvc.AddMember(c.ID, a.ID, d.ID, model.RoleMember)

	cases := []struct {
		userID    uint64
		canManage bool
		isOwner   bool
	}{
		{a.ID, true, true},
		{b.ID, true, false},
		{d.ID, false, false},
	}
	for _, tc := range cases {
		canManage, err := f.perms.CanManageCommunity(tc.userID, c.ID)
		if err != nil {
			t.Fatalf("CanManageCommunity failed: %v", err)
		}
		if canManage != tc.canManage {
			t.Errorf("user %d: expected canManage=%v", tc.userID, tc.canManage)
		}
		isOwner, err := f.perms.IsCommunityOwner(tc.userID, c.ID)
		if err != nil {
			t.Fatalf("IsCommunityOwner failed: %v", err)
		}
		if isOwner != tc.isOwner {
			t.Errorf("user %d: expected isOwner=%v", tc.userID, tc.isOwner)
		}
	}
}

func TestPermission_CanManageEvent_CreatorPermanence(t *testing.T) {
	f, a, c, g := setupGroup(t)
	b := f.addUser("bob")
	_, _ = f.communitySvc.AddMember(c.ID, a.ID, b.ID, model.RoleMember)
	_, _ = f.groupSvc.AddMember(g.ID, a.ID, b.ID, model.RoleMember)
	e, _ := f.eventSvc.Create(b.ID, CreateEventSpec{
		Title:   "bob's event",
		GroupID: &g.ID,
	})

	// bob 退组后仍可管理自己创建的活动
	if err := f.groupSvc.RemoveMember(g.ID, a.ID, b.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	ok, err := f.perms.CanManageEvent(b.ID, e.ID)
	if err != nil {
		t.Fatalf("CanManageEvent failed: %v", err)
	}
	if !ok {
		t.Error("creator must keep manage rights after leaving the group")
	}
}

func TestPermission_CanManageEvent_GroupAdmin(t *testing.T) {
	f, a, c, g := setupGroup(t)
	b := f.addUser("bob")
	d := f.addUser("dave")
	_, _ = f.communitySvc.AddMember(c.ID, a.ID, b.ID, model.RoleMember)
	_, _ = f.communitySvc.AddMember(c.ID, a.ID, d.ID, model.RoleMember)
	_, _ = f.groupSvc.AddMember(g.ID, a.ID, b.ID, model.RoleAdmin)
	_, _ = f.groupSvc.AddMember(g.ID, a.ID, d.ID, model.RoleMember)
	e, _ := f.eventSvc.Create(a.ID, groupEventSpec(g, false))

	if ok, _ := f.perms.CanManageEvent(b.ID, e.ID); !ok {
		t.Error("group admin must manage group events")
	}
	if ok, _ := f.perms.CanManageEvent(d.ID, e.ID); ok {
		t.Error("plain member must not manage the event")
	}
}

func TestPermission_CanManageEvent_CommunityEvent(t *testing.T) {
	f := newFixture()
	a := f.addUser("alice")
	b := f.addUser("bob")
	c, _ := f.communitySvc.Create(a.ID, "gophers", "")
	_, _ = f.communitySvc.AddMember(c.ID, a.ID, b.ID, model.RoleAdmin)
	e, _ := f.eventSvc.Create(a.ID, CreateEventSpec{Title: "townhall", CommunityID: &c.ID})

	// 社区级活动没有小组，只有创建者可管理
	if ok, _ := f.perms.CanManageEvent(a.ID, e.ID); !ok {
		t.Error("creator must manage own event")
	}
	if ok, _ := f.perms.CanManageEvent(b.ID, e.ID); ok {
		t.Error("community admin has no group to derive rights from")
	}
}
