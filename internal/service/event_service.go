package service

import (
	"errors"
	"fmt"
	"time"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
)

type EventService struct {
	users        UserStore
	repo         EventStore
	attendance   AttendanceStore
	groups       GroupStore
	communities  CommunityStore
	groupMembers GroupMemberStore
	perms        *Permission
}

func NewEventService(users UserStore, repo EventStore, attendance AttendanceStore,
	groups GroupStore, communities CommunityStore, groupMembers GroupMemberStore, perms *Permission) *EventService {
	return &EventService{
		users:        users,
		repo:         repo,
		attendance:   attendance,
		groups:       groups,
		communities:  communities,
		groupMembers: groupMembers,
		perms:        perms,
	}
}

type CreateEventSpec struct {
	Title             string
	Description       string
	CommunityID       *uint64
	GroupID           *uint64
	EventDate         time.Time
	EventTime         string
	Location          string
	AttendanceEnabled bool
}

type UpdateEventSpec struct {
	Title       *string
	Description *string
	EventDate   *time.Time
	EventTime   *string
	Location    *string
}

// AttendanceStats 查询时计算，不落库
type AttendanceStats struct {
	Total             int64   `json:"total"`
	Present           int64   `json:"present"`
	Absent            int64   `json:"absent"`
	Pending           int64   `json:"pending"`
	PresentPercentage float64 `json:"present_percentage"`
}

// Create 小组活动要求创建者是小组成员；社区缺省时取小组所属社区，
// 两者都给出时必须一致
func (s *EventService) Create(creatorID uint64, spec CreateEventSpec) (*model.Event, error) {
	if spec.Title == "" {
		return nil, fmt.Errorf("%w: event title required", pkg.ErrInvalidState)
	}
	if _, err := s.users.FindByID(creatorID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, creatorID)
	}

	event := &model.Event{
		Title:             spec.Title,
		Description:       spec.Description,
		CreatorID:         creatorID,
		EventDate:         spec.EventDate,
		EventTime:         spec.EventTime,
		Location:          spec.Location,
		AttendanceEnabled: spec.AttendanceEnabled,
	}

	if spec.CommunityID != nil {
		if _, err := s.communities.FindByID(*spec.CommunityID); err != nil {
			return nil, err
		}
		event.CommunityID = spec.CommunityID
	}

	if spec.GroupID != nil {
		group, err := s.groups.FindByID(*spec.GroupID)
		if err != nil {
			return nil, err
		}
		isMember, err := s.groupMembers.Exists(creatorID, group.ID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, fmt.Errorf("%w: must be a member of the group to create events", pkg.ErrForbidden)
		}
		if event.CommunityID != nil && *event.CommunityID != group.CommunityID {
			return nil, fmt.Errorf("%w: group %d belongs to community %d", pkg.ErrInvalidState, group.ID, group.CommunityID)
		}
		event.GroupID = spec.GroupID
		if event.CommunityID == nil {
			communityID := group.CommunityID
			event.CommunityID = &communityID
		}
	}

	if err := s.repo.Create(event); err != nil {
		return nil, err
	}

	if event.AttendanceEnabled && event.GroupID != nil {
		if err := s.initializeAttendance(event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func (s *EventService) Get(eventID uint64) (*model.Event, error) {
	return s.repo.FindByID(eventID)
}

func (s *EventService) ListByCommunity(communityID uint64) ([]model.Event, error) {
	return s.repo.ListByCommunity(communityID)
}

func (s *EventService) ListByGroup(groupID uint64) ([]model.Event, error) {
	return s.repo.ListByGroup(groupID)
}

func (s *EventService) ListUpcomingByCommunity(communityID uint64) ([]model.Event, error) {
	return s.repo.ListUpcomingByCommunity(communityID, time.Now().Truncate(24*time.Hour))
}

func (s *EventService) ListUpcomingByGroup(groupID uint64) ([]model.Event, error) {
	return s.repo.ListUpcomingByGroup(groupID, time.Now().Truncate(24*time.Hour))
}

// Update 创建者或小组管理员可改
func (s *EventService) Update(eventID, userID uint64, spec UpdateEventSpec) (*model.Event, error) {
	event, err := s.repo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	ok, err := s.perms.CanManageEvent(userID, eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no permission to update this event", pkg.ErrForbidden)
	}

	if spec.Title != nil && *spec.Title != "" {
		event.Title = *spec.Title
	}
	if spec.Description != nil {
		event.Description = *spec.Description
	}
	if spec.EventDate != nil {
		event.EventDate = *spec.EventDate
	}
	if spec.EventTime != nil {
		event.EventTime = *spec.EventTime
	}
	if spec.Location != nil {
		event.Location = *spec.Location
	}

	if err := s.repo.Save(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete 只有创建者可删，不对小组管理员放行
func (s *EventService) Delete(eventID, userID uint64) error {
	event, err := s.repo.FindByID(eventID)
	if err != nil {
		return err
	}
	if event.CreatorID != userID {
		return fmt.Errorf("%w: only the creator can delete this event", pkg.ErrForbidden)
	}
	return s.repo.Delete(eventID)
}

// ToggleAttendance 开启且尚无出勤记录时初始化；关闭不删除历史记录
func (s *EventService) ToggleAttendance(eventID, userID uint64, enabled bool) (*model.Event, error) {
	event, err := s.repo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	ok, err := s.perms.CanManageEvent(userID, eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no permission to modify attendance", pkg.ErrForbidden)
	}

	event.AttendanceEnabled = enabled
	if err := s.repo.Save(event); err != nil {
		return nil, err
	}

	if enabled && event.GroupID != nil {
		count, err := s.attendance.CountByEvent(eventID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			if err := s.initializeAttendance(event); err != nil {
				return nil, err
			}
		}
	}
	return event, nil
}

// MarkAttendance 不做角色检查，调用方应在上游过 CanManageEvent；
// 记录不存在则首次写入即创建
func (s *EventService) MarkAttendance(eventID, markerID, targetUserID, groupID uint64, status model.AttendanceStatus) (*model.EventAttendance, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid attendance status %q", pkg.ErrInvalidState, status)
	}
	event, err := s.repo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	if !event.AttendanceEnabled {
		return nil, fmt.Errorf("%w: event %d", pkg.ErrAttendanceDisabled, eventID)
	}
	if _, err := s.users.FindByID(markerID); err != nil {
		return nil, fmt.Errorf("%w: marker user %d", pkg.ErrNotFound, markerID)
	}
	if _, err := s.users.FindByID(targetUserID); err != nil {
		return nil, fmt.Errorf("%w: user %d", pkg.ErrNotFound, targetUserID)
	}
	if _, err := s.groups.FindByID(groupID); err != nil {
		return nil, err
	}

	a, err := s.attendance.Find(eventID, targetUserID, groupID)
	if err != nil {
		if !errors.Is(err, pkg.ErrNotFound) {
			return nil, err
		}
		a = &model.EventAttendance{
			EventID: eventID,
			UserID:  targetUserID,
			GroupID: groupID,
		}
	}

	now := time.Now()
	a.Status = status
	a.MarkedBy = &markerID
	a.MarkedAt = &now
	if err := s.attendance.Save(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *EventService) Attendance(eventID uint64) ([]model.EventAttendance, error) {
	if _, err := s.repo.FindByID(eventID); err != nil {
		return nil, err
	}
	return s.attendance.ListByEvent(eventID)
}

func (s *EventService) AttendanceByGroup(eventID, groupID uint64) ([]model.EventAttendance, error) {
	if _, err := s.repo.FindByID(eventID); err != nil {
		return nil, err
	}
	if _, err := s.groups.FindByID(groupID); err != nil {
		return nil, err
	}
	return s.attendance.ListByEventAndGroup(eventID, groupID)
}

func (s *EventService) Stats(eventID uint64) (*AttendanceStats, error) {
	if _, err := s.repo.FindByID(eventID); err != nil {
		return nil, err
	}
	total, err := s.attendance.CountByEvent(eventID)
	if err != nil {
		return nil, err
	}
	present, err := s.attendance.CountByStatus(eventID, model.AttendancePresent)
	if err != nil {
		return nil, err
	}
	absent, err := s.attendance.CountByStatus(eventID, model.AttendanceAbsent)
	if err != nil {
		return nil, err
	}
	pending, err := s.attendance.CountByStatus(eventID, model.AttendancePending)
	if err != nil {
		return nil, err
	}

	stats := &AttendanceStats{
		Total:   total,
		Present: present,
		Absent:  absent,
		Pending: pending,
	}
	if total > 0 {
		stats.PresentPercentage = float64(present) * 100.0 / float64(total)
	}
	return stats, nil
}

// initializeAttendance 给当前每个小组成员补一条 PENDING 记录。
// 逐行幂等插入，重复调用或中途失败后重跑都不会覆盖已标记的状态
func (s *EventService) initializeAttendance(event *model.Event) error {
	if event.GroupID == nil {
		return nil
	}
	memberships, err := s.groupMembers.ListByGroup(*event.GroupID)
	if err != nil {
		return err
	}
	for _, m := range memberships {
		a := &model.EventAttendance{
			EventID: event.ID,
			UserID:  m.UserID,
			GroupID: *event.GroupID,
			Status:  model.AttendancePending,
		}
		if err := s.attendance.InitPending(a); err != nil {
			return err
		}
	}
	return nil
}
