// Package types 定义基本类型
package types

import "time"

// LoadState 模型加载状态
type LoadState int

// 定义模型加载状态常量
const (
	LoadStateUnloaded LoadState = iota
	LoadStateLoading
	LoadStateReady
	LoadStateFailed
)

// String 返回加载状态的文本表示
func (s LoadState) String() string {
	switch s {
	case LoadStateUnloaded:
		return "unloaded"
	case LoadStateLoading:
		return "loading"
	case LoadStateReady:
		return "ready"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StageStatus 单个阶段的加载状态快照
type StageStatus struct {
	Stage    string    // 阶段名称
	State    LoadState // 加载状态
	Error    error     // 加载失败原因
	LoadedAt time.Time // 加载完成时间
}

// Ready 判断阶段是否可用
func (s StageStatus) Ready() bool {
	return s.State == LoadStateReady
}
