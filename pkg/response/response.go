package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/hopon/pkg/logger"
)

// 统一 JSON 响应帮助函数。错误体固定为 {"error": "..."}。

// OK 200 + 任意 JSON 负载
func OK(c *gin.Context, obj any) { c.JSON(http.StatusOK, obj) }

// Created 201 + 任意 JSON 负载
func Created(c *gin.Context, obj any) { c.JSON(http.StatusCreated, obj) }

// Message 200 + {"message": msg}
func Message(c *gin.Context, msg string) { c.JSON(http.StatusOK, gin.H{"message": msg}) }

// Error 指定状态码 + {"error": msg}
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }

func NotFound(c *gin.Context, msg string) { Error(c, http.StatusNotFound, msg) }

func Conflict(c *gin.Context, msg string) { Error(c, http.StatusConflict, msg) }

// InternalError 记录原始错误，只向客户端暴露笼统信息
func InternalError(c *gin.Context, err error, msg string) {
	logger.Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Error(c, http.StatusInternalServerError, msg)
}
