package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ttm_chat_server/internal/clients/llama"
	"ttm_chat_server/internal/config"
)

// fakeRuntime 测试用生成运行时
type fakeRuntime struct {
	mu           sync.Mutex
	pullErr      map[string]error // 模型名→拉取错误
	pullCalls    map[string]int   // 模型名→拉取次数
	chatErr      error            // 生成错误
	fragments    []string         // 流式返回的片段
	delay        time.Duration    // 每个片段之间的延迟
	chatCalls    int32            // 生成调用次数
	active       int32            // 当前并发生成数
	maxActive    int32            // 观测到的最大并发生成数
	lastMessages []llama.ChatMessage
}

func newFakeRuntime(fragments ...string) *fakeRuntime {
	return &fakeRuntime{
		pullErr:   make(map[string]error),
		pullCalls: make(map[string]int),
		fragments: fragments,
	}
}

// Pull 模拟模型拉取
func (f *fakeRuntime) Pull(ctx context.Context, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pullCalls[model]++
	return f.pullErr[model]
}

// ChatStream 模拟流式生成
func (f *fakeRuntime) ChatStream(ctx context.Context, model string, messages []llama.ChatMessage, options llama.Options, callback func(*llama.ChatResponse) error) error {
	atomic.AddInt32(&f.chatCalls, 1)

	// 记录并发生成数
	active := atomic.AddInt32(&f.active, 1)
	for {
		max := atomic.LoadInt32(&f.maxActive)
		if active <= max || atomic.CompareAndSwapInt32(&f.maxActive, max, active) {
			break
		}
	}
	defer atomic.AddInt32(&f.active, -1)

	f.mu.Lock()
	f.lastMessages = messages
	chatErr := f.chatErr
	fragments := f.fragments
	delay := f.delay
	f.mu.Unlock()

	if chatErr != nil {
		return chatErr
	}

	for i, fragment := range fragments {
		if delay > 0 {
			time.Sleep(delay)
		}
		resp := &llama.ChatResponse{
			Model:   model,
			Message: llama.ChatMessage{Role: "assistant", Content: fragment},
			Done:    i == len(fragments)-1,
		}
		if err := callback(resp); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRuntime) chatCallCount() int {
	return int(atomic.LoadInt32(&f.chatCalls))
}

// testConfig 构造测试配置
func testConfig() *config.Config {
	return &config.Config{
		Stages: config.StagesConfig{
			Empathy: config.StageConfig{Model: "ttm-empathy"},
			MI:      config.StageConfig{Model: "ttm-mi"},
			CBT1:    config.StageConfig{Model: "ttm-cbt1"},
			CBT2:    config.StageConfig{Model: "ttm-cbt2"},
			CBT3:    config.StageConfig{Model: "ttm-cbt3"},
		},
	}
}
