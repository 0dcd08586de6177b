package handler

import (
    "fmt"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/hopon/internal/service"
    "github.com/d60-Lab/hopon/pkg/response"
)

// Handler 聚合全部 HTTP 处理器
type Handler struct {
    eventSvc      service.EventService
    membershipSvc service.MembershipService
    userSvc       service.UserService
    relSvc        service.RelationshipService
}

func New(eventSvc service.EventService, membershipSvc service.MembershipService, userSvc service.UserService, relSvc service.RelationshipService) *Handler {
    return &Handler{eventSvc: eventSvc, membershipSvc: membershipSvc, userSvc: userSvc, relSvc: relSvc}
}

// Health 存活探针
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
    response.OK(c, gin.H{"status": "ok"})
}

// Hello 示例接口
// @Summary Hello
// @Tags 系统
// @Param name query string false "名字" default(world)
// @Produce json
// @Success 200 {object} map[string]string
// @Router /hello [get]
func (h *Handler) Hello(c *gin.Context) {
    name := c.DefaultQuery("name", "world")
    response.OK(c, gin.H{"message": fmt.Sprintf("Hello, %s!", name)})
}
