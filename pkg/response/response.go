// Package response 提供统一的 HTTP 响应包装
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 统一响应结构
type Body struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Data    any      `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created 创建成功响应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// ErrorWithStatus 失败响应，附带错误明细
func ErrorWithStatus(c *gin.Context, status int, message string, errs []string) {
	c.JSON(status, Body{Success: false, Message: message, Errors: errs})
}
