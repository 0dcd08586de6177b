package router

import (
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/d60-Lab/hopon/internal/api/handler"
    "github.com/d60-Lab/hopon/internal/api/middleware"
)

// ServiceName otelgin 上报用的服务名
const ServiceName = "hopon"

// New 组装路由与中间件
func New(h *handler.Handler) *gin.Engine {
    r := gin.New()
    r.Use(middleware.AccessLog())
    r.Use(middleware.Recovery())
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(otelgin.Middleware(ServiceName))

    r.GET("/health", h.Health)
    r.GET("/hello", h.Hello)

    r.POST("/events", h.CreateEvent)
    r.GET("/events", h.ListEvents)
    r.GET("/events/nearby", h.NearbyEvents)
    r.GET("/events/:id", h.GetEvent)
    r.POST("/events/:id/join", h.JoinEvent)
    r.POST("/events/:id/leave", h.LeaveEvent)
    r.GET("/events/:id/participants", h.EventParticipants)

    r.POST("/users", h.CreateUser)
    r.GET("/users/nearby", h.NearbyUsers)
    r.GET("/users/:id", h.GetUser)
    r.POST("/users/:id/follow", h.FollowUser)
    r.DELETE("/users/:id/follow", h.UnfollowUser)
    r.GET("/users/:id/following", h.ListFollowing)
    r.GET("/users/:id/followers", h.ListFollowers)

    r.GET("/me/events", h.MyEvents)

    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

    return r
}
