package handler

import (
    "errors"
    "strconv"
    "time"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/hopon/internal/service"
    "github.com/d60-Lab/hopon/pkg/response"
)

type createEventRequest struct {
    Name       string     `json:"name" binding:"required"`
    Sport      string     `json:"sport" binding:"required"`
    Location   string     `json:"location" binding:"required"`
    Notes      *string    `json:"notes"`
    MaxPlayers int        `json:"max_players" binding:"required,min=1"`
    EventDate  *time.Time `json:"event_date"`
    Latitude   *float64   `json:"latitude" binding:"omitempty,latitude"`
    Longitude  *float64   `json:"longitude" binding:"omitempty,longitude"`
    SkillLevel *string    `json:"skill_level" binding:"omitempty,skill_level"`
    HostUserID *string    `json:"host_user_id"`
}

// CreateEvent 创建球局
// @Summary 创建球局
// @Tags 球局
// @Accept json
// @Produce json
// @Param request body createEventRequest true "球局信息"
// @Success 201 {object} model.Event
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
    var req createEventRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, "Missing required fields: name, sport, location, max_players")
        return
    }
    event, err := h.eventSvc.Create(c.Request.Context(), service.CreateEventInput{
        Name:       req.Name,
        Sport:      req.Sport,
        Location:   req.Location,
        Notes:      req.Notes,
        MaxPlayers: req.MaxPlayers,
        EventDate:  req.EventDate,
        Latitude:   req.Latitude,
        Longitude:  req.Longitude,
        SkillLevel: req.SkillLevel,
        HostUserID: req.HostUserID,
    })
    if err != nil {
        if errors.Is(err, service.ErrCoordinatePair) {
            response.BadRequest(c, err.Error())
            return
        }
        response.InternalError(c, err, "Failed to create event")
        return
    }
    response.Created(c, gin.H{"message": "Event created successfully", "event": event})
}

// ListEvents 全部球局（新建在前）
// @Summary 球局列表
// @Tags 球局
// @Produce json
// @Success 200 {array} model.Event
// @Router /events [get]
func (h *Handler) ListEvents(c *gin.Context) {
    events, err := h.eventSvc.List(c.Request.Context())
    if err != nil {
        response.InternalError(c, err, "Failed to list events")
        return
    }
    response.OK(c, events)
}

// NearbyEvents 附近球局（按距离升序，无坐标排最后）
// @Summary 附近球局
// @Tags 球局
// @Param lat query number false "纬度"
// @Param lng query number false "经度"
// @Produce json
// @Success 200 {array} service.EventWithDistance
// @Router /events/nearby [get]
func (h *Handler) NearbyEvents(c *gin.Context) {
    var ref *service.GeoPoint
    latStr, lngStr := c.Query("lat"), c.Query("lng")
    if latStr != "" && lngStr != "" {
        lat, latErr := strconv.ParseFloat(latStr, 64)
        lng, lngErr := strconv.ParseFloat(lngStr, 64)
        if latErr == nil && lngErr == nil {
            ref = &service.GeoPoint{Lat: lat, Lng: lng}
        }
    }
    events, err := h.eventSvc.Nearby(c.Request.Context(), ref)
    if err != nil {
        response.InternalError(c, err, "Failed to list events")
        return
    }
    response.OK(c, events)
}

// GetEvent 球局详情
// @Summary 球局详情
// @Tags 球局
// @Param id path string true "球局ID"
// @Produce json
// @Success 200 {object} model.Event
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
    event, err := h.eventSvc.Get(c.Request.Context(), c.Param("id"))
    if err != nil {
        if errors.Is(err, service.ErrEventNotFound) {
            response.NotFound(c, err.Error())
            return
        }
        response.InternalError(c, err, "Failed to get event")
        return
    }
    response.OK(c, event)
}

// MyEvents 我加入与主办的球局
// @Summary 我的球局
// @Tags 球局
// @Param user_id query string true "用户ID"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /me/events [get]
func (h *Handler) MyEvents(c *gin.Context) {
    userID := c.Query("user_id")
    if userID == "" {
        response.BadRequest(c, "user_id is required")
        return
    }
    joined, hosted, err := h.eventSvc.MyEvents(c.Request.Context(), userID)
    if err != nil {
        response.InternalError(c, err, "Failed to list events")
        return
    }
    response.OK(c, gin.H{"joined": joined, "hosted": hosted})
}
