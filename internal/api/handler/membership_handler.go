package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/hopon/internal/service"
    "github.com/d60-Lab/hopon/pkg/response"
)

type joinRequest struct {
    PlayerName string  `json:"player_name" binding:"required"`
    UserID     *string `json:"user_id"`
    Team       string  `json:"team"`
}

type leaveRequest struct {
    UserID string `json:"user_id" binding:"required"`
}

// JoinEvent 加入球局
// @Summary 加入球局
// @Tags 参与
// @Accept json
// @Produce json
// @Param id path string true "球局ID"
// @Param request body joinRequest true "报名信息"
// @Success 200 {object} map[string]interface{} "重复加入（幂等）"
// @Success 201 {object} map[string]interface{} "新加入"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "满员或并发冲突"
// @Router /events/{id}/join [post]
func (h *Handler) JoinEvent(c *gin.Context) {
    var req joinRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, "Player name is required")
        return
    }
    event, already, err := h.membershipSvc.Join(c.Request.Context(), c.Param("id"), service.JoinRequest{
        PlayerName: req.PlayerName,
        UserID:     req.UserID,
        Team:       req.Team,
    })
    if err != nil {
        switch {
        case errors.Is(err, service.ErrEventNotFound):
            response.NotFound(c, err.Error())
        case errors.Is(err, service.ErrEventFull):
            response.Conflict(c, "Event is full")
        case errors.Is(err, service.ErrJoinConflict):
            response.Conflict(c, "Failed to join event")
        default:
            response.InternalError(c, err, "Failed to join event")
        }
        return
    }
    if already {
        response.OK(c, gin.H{"message": "Already joined", "event": event})
        return
    }
    response.Created(c, gin.H{"message": "Successfully joined event", "event": event})
}

// LeaveEvent 退出球局（非参与者为幂等 no-op）
// @Summary 退出球局
// @Tags 参与
// @Accept json
// @Produce json
// @Param id path string true "球局ID"
// @Param request body leaveRequest true "用户"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /events/{id}/leave [post]
func (h *Handler) LeaveEvent(c *gin.Context) {
    var req leaveRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, "user_id is required")
        return
    }
    removed, err := h.membershipSvc.Leave(c.Request.Context(), c.Param("id"), req.UserID)
    if err != nil {
        response.InternalError(c, err, "Failed to leave event")
        return
    }
    if !removed {
        response.Message(c, "Not a participant")
        return
    }
    response.Message(c, "Left event")
}

// EventParticipants 球局名单
// @Summary 球局名单
// @Tags 参与
// @Param id path string true "球局ID"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/{id}/participants [get]
func (h *Handler) EventParticipants(c *gin.Context) {
    event, participants, err := h.membershipSvc.Participants(c.Request.Context(), c.Param("id"))
    if err != nil {
        if errors.Is(err, service.ErrEventNotFound) {
            response.NotFound(c, err.Error())
            return
        }
        response.InternalError(c, err, "Failed to list participants")
        return
    }
    response.OK(c, gin.H{"event": event, "participants": participants})
}
