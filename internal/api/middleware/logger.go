package middleware

import (
    "time"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "github.com/d60-Lab/hopon/pkg/logger"
)

// AccessLog 请求访问日志
func AccessLog() gin.HandlerFunc {
    return func(c *gin.Context) {
        start := time.Now()
        c.Next()
        logger.Info("request",
            zap.String("method", c.Request.Method),
            zap.String("path", c.Request.URL.Path),
            zap.Int("status", c.Writer.Status()),
            zap.Duration("latency", time.Since(start)),
            zap.String("client_ip", c.ClientIP()),
        )
    }
}
