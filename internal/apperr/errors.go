// Package apperr 定义应用层错误分类：校验失败、未找到、冲突，其余视为内部错误
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict 并发冲突，预留给持久层检测到的写冲突
var ErrConflict = errors.New("conflict detected")

// ValidationError 校验失败，携带全部失败规则的描述
type ValidationError struct {
	Failures []string
}

// NewValidation 创建校验失败错误
func NewValidation(failures []string) *ValidationError {
	return &ValidationError{Failures: failures}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Failures, "; "))
}

// NotFoundError 实体不存在或已被软删除
type NotFoundError struct {
	Entity string
	Key    any
}

// NewNotFound 创建未找到错误
func NewNotFound(entity string, key any) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s (%v) not found", e.Entity, e.Key)
}

// IsValidation 判断是否为校验失败
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound 判断是否为未找到
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict 判断是否为并发冲突
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// FailureMessages 提取校验失败明细，非校验错误返回 nil
func FailureMessages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Failures
	}
	return nil
}
