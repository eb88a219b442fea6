package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED, UNAVAILABLE
//   - Model 错误：TRAIN_TIMEOUT, INVALID_INPUT
//   - 其他领域错误
//
// 注意：空数据（空目录、空交互、画像不可解析）不是错误，
// 走 service 里的冷启动/兜底分支。
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "TRAIN_TIMEOUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "model", "service"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError（支持 %w 包装链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 存储不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeTrainTimeout  = "TRAIN_TIMEOUT"  // 模型训练超时
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore   = "store"
	ModuleModel   = "model"
	ModuleService = "service"
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsTrainTimeout 检查错误是否为训练超时。
// 训练超时是可恢复错误：facade 应快速失败并返回通用错误，不泄露细节。
func IsTrainTimeout(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeTrainTimeout
	}
	return false
}

// IsStoreNotFound 检查错误是否为存储层的 key 不存在。
func IsStoreNotFound(err error) bool {
	return err == ErrStoreNotFound || IsNotFound(err)
}
