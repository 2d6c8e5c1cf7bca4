package models

import "fmt"

// ValidationError 请求状态验证错误，对应4xx响应
type ValidationError struct {
	Field   string // 出错字段
	Message string // 错误描述
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("状态验证失败: %s: %s", e.Field, e.Message)
}

// ModelLoadError 模型加载错误，阶段在进程生命周期内不可用
type ModelLoadError struct {
	Stage Stage // 出错阶段
	Err   error // 底层错误
}

func (e *ModelLoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("阶段%s模型未就绪", e.Stage)
	}
	return fmt.Sprintf("阶段%s模型不可用: %v", e.Stage, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// GenerationError 生成过程中的运行时错误，只影响当前请求
type GenerationError struct {
	Stage Stage // 出错阶段
	Err   error // 底层错误
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("阶段%s生成失败: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
