package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/hopon/internal/service"
    "github.com/d60-Lab/hopon/pkg/response"
)

type followRequest struct {
    FollowerID string `json:"follower_id" binding:"required"`
}

// FollowUser 关注用户
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Param id path string true "被关注用户ID"
// @Param request body followRequest true "关注者"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "缺少 follower_id 或自关注"
// @Router /users/{id}/follow [post]
func (h *Handler) FollowUser(c *gin.Context) {
    var req followRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, "follower_id is required")
        return
    }
    already, err := h.relSvc.Follow(c.Request.Context(), req.FollowerID, c.Param("id"))
    if err != nil {
        if errors.Is(err, service.ErrFollowSelf) {
            response.BadRequest(c, err.Error())
            return
        }
        response.InternalError(c, err, "Failed to follow user")
        return
    }
    if already {
        response.Message(c, "Already following")
        return
    }
    response.Message(c, "Followed")
}

// UnfollowUser 取消关注（未关注为幂等 no-op）
// @Summary 取消关注
// @Tags 关系链
// @Param id path string true "被关注用户ID"
// @Param follower_id query string true "关注者ID"
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users/{id}/follow [delete]
func (h *Handler) UnfollowUser(c *gin.Context) {
    followerID := c.Query("follower_id")
    if followerID == "" {
        response.BadRequest(c, "follower_id is required")
        return
    }
    removed, err := h.relSvc.Unfollow(c.Request.Context(), followerID, c.Param("id"))
    if err != nil {
        response.InternalError(c, err, "Failed to unfollow user")
        return
    }
    if !removed {
        response.Message(c, "Not following")
        return
    }
    response.Message(c, "Unfollowed")
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
    userID := c.Param("id")
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
    list, err := h.relSvc.ListFollowing(c.Request.Context(), userID, page, pageSize)
    if err != nil {
        response.InternalError(c, err, "Failed to list following")
        return
    }
    response.OK(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
    userID := c.Param("id")
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
    list, err := h.relSvc.ListFans(c.Request.Context(), userID, page, pageSize)
    if err != nil {
        response.InternalError(c, err, "Failed to list followers")
        return
    }
    response.OK(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
