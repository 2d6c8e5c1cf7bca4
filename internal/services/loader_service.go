// Package services 提供咨询对话的核心服务
package services

import (
	"context"
	"log"
	"sync"
	"time"

	"ttm_chat_server/internal/clients/llama"
	"ttm_chat_server/internal/config"
	"ttm_chat_server/internal/models"
	"ttm_chat_server/internal/types"
)

// RuntimeClient 生成运行时客户端接口
type RuntimeClient interface {
	// Pull 从模型仓库拉取并加载模型
	Pull(ctx context.Context, model string) error

	// ChatStream 流式生成对话回复
	ChatStream(ctx context.Context, model string, messages []llama.ChatMessage, options llama.Options, callback func(*llama.ChatResponse) error) error
}

// StageLoader 单个阶段的模型加载器，进程启动时创建一次，跨请求复用
type StageLoader struct {
	stage   models.Stage
	model   string
	options llama.Options
	client  RuntimeClient

	// genMu 串行化同一阶段的生成调用，底层运行时未声明并发安全
	genMu sync.Mutex

	// stateMu 保护加载状态
	stateMu sync.RWMutex
	status  types.StageStatus
}

// NewStageLoader 创建阶段模型加载器
func NewStageLoader(stage models.Stage, cfg config.StageConfig, client RuntimeClient) *StageLoader {
	return &StageLoader{
		stage:  stage,
		model:  cfg.Model,
		client: client,
		options: llama.Options{
			Temperature:      cfg.Temperature,
			TopP:             cfg.TopP,
			TopK:             cfg.TopK,
			MaxTokens:        cfg.MaxTokens,
			RepeatPenalty:    cfg.RepeatPenalty,
			FrequencyPenalty: cfg.FrequencyPenalty,
			PresencePenalty:  cfg.PresencePenalty,
		},
		status: types.StageStatus{
			Stage: string(stage),
			State: types.LoadStateUnloaded,
		},
	}
}

// Load 拉取并加载本阶段模型，加载失败后阶段在进程生命周期内不可用
func (l *StageLoader) Load(ctx context.Context) error {
	l.stateMu.Lock()
	switch l.status.State {
	case types.LoadStateReady:
		l.stateMu.Unlock()
		return nil
	case types.LoadStateFailed:
		err := l.status.Error
		l.stateMu.Unlock()
		return &models.ModelLoadError{Stage: l.stage, Err: err}
	case types.LoadStateLoading:
		l.stateMu.Unlock()
		return nil
	}
	l.status.State = types.LoadStateLoading
	l.stateMu.Unlock()

	log.Printf("开始加载阶段模型: stage=%s model=%s", l.stage, l.model)
	err := l.client.Pull(ctx, l.model)

	l.stateMu.Lock()
	defer l.stateMu.Unlock()
	if err != nil {
		l.status.State = types.LoadStateFailed
		l.status.Error = err
		log.Printf("阶段模型加载失败: stage=%s err=%v", l.stage, err)
		return &models.ModelLoadError{Stage: l.stage, Err: err}
	}
	l.status.State = types.LoadStateReady
	l.status.LoadedAt = time.Now()
	log.Printf("阶段模型加载完成: stage=%s model=%s", l.stage, l.model)
	return nil
}

// Status 返回当前加载状态快照
func (l *StageLoader) Status() types.StageStatus {
	l.stateMu.RLock()
	defer l.stateMu.RUnlock()
	return l.status
}

// Ready 判断本阶段是否可用
func (l *StageLoader) Ready() bool {
	return l.Status().Ready()
}

// GenerateStream 流式生成文本，按生成顺序回调每个片段
func (l *StageLoader) GenerateStream(ctx context.Context, messages []llama.ChatMessage, callback func(token string) error) error {
	status := l.Status()
	if !status.Ready() {
		return &models.ModelLoadError{Stage: l.stage, Err: status.Error}
	}

	// 同一阶段的生成调用串行执行，不同阶段互不影响
	l.genMu.Lock()
	defer l.genMu.Unlock()

	err := l.client.ChatStream(ctx, l.model, messages, l.options, func(resp *llama.ChatResponse) error {
		if resp.Message.Content == "" {
			return nil
		}
		return callback(resp.Message.Content)
	})
	if err != nil {
		return &models.GenerationError{Stage: l.stage, Err: err}
	}
	return nil
}
