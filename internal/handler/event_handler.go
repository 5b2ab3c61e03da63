package handler

import (
	"net/http"
	"time"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type EventCreateReq struct {
	Title             string  `json:"title" binding:"required"`
	Description       string  `json:"description"`
	CommunityID       *uint64 `json:"community_id"`
	GroupID           *uint64 `json:"group_id"`
	EventDate         string  `json:"event_date" binding:"required"` // 2006-01-02
	EventTime         string  `json:"event_time"`                    // 15:04
	Location          string  `json:"location"`
	AttendanceEnabled bool    `json:"attendance_enabled"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	date, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid event_date"})
		return
	}

	event, err := h.svc.Create(currentUserID(c), service.CreateEventSpec{
		Title:             req.Title,
		Description:       req.Description,
		CommunityID:       req.CommunityID,
		GroupID:           req.GroupID,
		EventDate:         date,
		EventTime:         req.EventTime,
		Location:          req.Location,
		AttendanceEnabled: req.AttendanceEnabled,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	event, err := h.svc.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListByCommunity(c *gin.Context) {
	communityID, ok := pathID(c, "communityId")
	if !ok {
		return
	}
	var (
		list []model.Event
		err  error
	)
	if c.Query("upcoming") == "true" {
		list, err = h.svc.ListUpcomingByCommunity(communityID)
	} else {
		list, err = h.svc.ListByCommunity(communityID)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *EventHandler) ListByGroup(c *gin.Context) {
	groupID, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	var (
		list []model.Event
		err  error
	)
	if c.Query("upcoming") == "true" {
		list, err = h.svc.ListUpcomingByGroup(groupID)
	} else {
		list, err = h.svc.ListByGroup(groupID)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

type EventUpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
	EventTime   *string `json:"event_time"`
	Location    *string `json:"location"`
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req EventUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	spec := service.UpdateEventSpec{
		Title:       req.Title,
		Description: req.Description,
		EventTime:   req.EventTime,
		Location:    req.Location,
	}
	if req.EventDate != nil {
		date, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid event_date"})
			return
		}
		spec.EventDate = &date
	}

	event, err := h.svc.Update(id, currentUserID(c), spec)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(id, currentUserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

type ToggleAttendanceReq struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *EventHandler) ToggleAttendance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ToggleAttendanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	event, err := h.svc.ToggleAttendance(id, currentUserID(c), *req.Enabled)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

type MarkAttendanceReq struct {
	UserID  uint64                 `json:"user_id" binding:"required"`
	GroupID uint64                 `json:"group_id" binding:"required"`
	Status  model.AttendanceStatus `json:"status" binding:"required"`
}

func (h *EventHandler) MarkAttendance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req MarkAttendanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	a, err := h.svc.MarkAttendance(id, currentUserID(c), req.UserID, req.GroupID, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *EventHandler) Attendance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var (
		list []model.EventAttendance
		err  error
	)
	if groupStr := c.Query("group_id"); groupStr != "" {
		groupID, perr := parseUint(groupStr)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid group_id"})
			return
		}
		list, err = h.svc.AttendanceByGroup(id, groupID)
	} else {
		list, err = h.svc.Attendance(id)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *EventHandler) Stats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.svc.Stats(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
