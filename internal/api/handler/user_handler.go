package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/hopon/internal/service"
    "github.com/d60-Lab/hopon/pkg/response"
)

type createUserRequest struct {
    Username string   `json:"username" binding:"required"`
    Email    string   `json:"email" binding:"required,email"`
    Bio      *string  `json:"bio"`
    Gender   *string  `json:"gender"`
    Rating   *float64 `json:"rating"`
    Location *string  `json:"location"`
    Sports   *string  `json:"sports"`
}

// CreateUser 注册用户
// @Summary 注册用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body createUserRequest true "用户信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "用户名或邮箱已存在"
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
    var req createUserRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, "Missing required fields: username, email")
        return
    }
    user, err := h.userSvc.Create(c.Request.Context(), service.CreateUserInput{
        Username: req.Username,
        Email:    req.Email,
        Bio:      req.Bio,
        Gender:   req.Gender,
        Rating:   req.Rating,
        Location: req.Location,
        Sports:   req.Sports,
    })
    if err != nil {
        if errors.Is(err, service.ErrDuplicateUser) {
            response.Conflict(c, "Username or email already exists")
            return
        }
        response.InternalError(c, err, "Failed to create user")
        return
    }
    response.Created(c, gin.H{"message": "User created successfully", "user": user})
}

// GetUser 用户详情
// @Summary 用户详情
// @Tags 用户
// @Param id path string true "用户ID"
// @Produce json
// @Success 200 {object} service.UserView
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
    user, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
    if err != nil {
        if errors.Is(err, service.ErrUserNotFound) {
            response.NotFound(c, err.Error())
            return
        }
        response.InternalError(c, err, "Failed to get user")
        return
    }
    response.OK(c, user)
}

// NearbyUsers 发现页用户列表（附带已加入局数）
// @Summary 附近用户
// @Tags 用户
// @Produce json
// @Success 200 {array} service.UserWithStats
// @Router /users/nearby [get]
func (h *Handler) NearbyUsers(c *gin.Context) {
    users, err := h.userSvc.Nearby(c.Request.Context())
    if err != nil {
        response.InternalError(c, err, "Failed to list users")
        return
    }
    response.OK(c, users)
}
