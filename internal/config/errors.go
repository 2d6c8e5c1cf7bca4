package config

import "errors"

// 配置相关错误
var (
	ErrInvalidPort      = errors.New("服务器端口必须大于0")
	ErrEmptyRuntimeHost = errors.New("生成运行时地址不能为空")
	ErrEmptyStageModel  = errors.New("阶段模型名称不能为空")
)
