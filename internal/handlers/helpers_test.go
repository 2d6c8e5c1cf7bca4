package handlers_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ttm_chat_server/internal/clients/llama"
	"ttm_chat_server/internal/config"
	"ttm_chat_server/internal/middleware"
	"ttm_chat_server/internal/routes"
	"ttm_chat_server/internal/services"

	"github.com/gin-gonic/gin"
)

// fakeRuntime 测试用生成运行时
type fakeRuntime struct {
	mu        sync.Mutex
	pullErr   map[string]error // 模型名→拉取错误
	chatErr   error            // 生成错误
	failAfter int              // 先输出N个片段再返回生成错误，0表示立即失败
	fragments []string         // 流式返回的片段
	chatCalls int32            // 生成调用次数
}

func newFakeRuntime(fragments ...string) *fakeRuntime {
	return &fakeRuntime{
		pullErr:   make(map[string]error),
		fragments: fragments,
	}
}

// Pull 模拟模型拉取
func (f *fakeRuntime) Pull(ctx context.Context, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pullErr[model]
}

// ChatStream 模拟流式生成
func (f *fakeRuntime) ChatStream(ctx context.Context, model string, messages []llama.ChatMessage, options llama.Options, callback func(*llama.ChatResponse) error) error {
	atomic.AddInt32(&f.chatCalls, 1)

	f.mu.Lock()
	chatErr := f.chatErr
	failAfter := f.failAfter
	fragments := f.fragments
	f.mu.Unlock()

	for i, fragment := range fragments {
		if chatErr != nil && i >= failAfter {
			return chatErr
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
	if chatErr != nil {
		return chatErr
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
		WebSocket: config.WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			PingPeriod:      30 * time.Second,
			PongWait:        60 * time.Second,
		},
	}
}

// newTestRouter 构造完整路由，返回引擎和注册表
func newTestRouter(runtime *fakeRuntime) (*gin.Engine, *services.Registry) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	registry := services.NewRegistry(cfg, runtime)
	registry.LoadAll(context.Background(), time.Minute)
	chatService := services.NewChatService(registry)

	r := gin.New()
	middleware.Setup(r)
	routes.RegisterRoutes(r, chatService, cfg.WebSocket)
	return r, registry
}
