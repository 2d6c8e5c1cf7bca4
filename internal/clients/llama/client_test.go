package llama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ttm_chat_server/internal/clients/llama"
)

func TestClient_Pull(t *testing.T) {
	// 创建测试服务器
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 检查请求方法和路径
		if r.Method != "POST" {
			t.Errorf("期望POST请求，实际收到%s", r.Method)
		}
		if r.URL.Path != "/api/pull" {
			t.Errorf("期望路径/api/pull，实际收到%s", r.URL.Path)
		}

		// 检查下载令牌
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("期望Bearer令牌，实际收到%s", r.Header.Get("Authorization"))
		}

		// 解析请求体
		var req llama.PullRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("解析请求体失败: %v", err)
		}
		if req.Name != "test-model" {
			t.Errorf("期望模型test-model，实际收到%s", req.Name)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llama.PullResponse{Status: "success"})
	}))
	defer server.Close()

	client := llama.NewClient(llama.Config{
		Host:  server.URL,
		Token: "test-token",
	})

	if err := client.Pull(context.Background(), "test-model"); err != nil {
		t.Errorf("Pull() error = %v", err)
	}
}

func TestClient_PullError(t *testing.T) {
	// 创建返回拉取失败的测试服务器
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llama.PullResponse{Error: "模型不存在"})
	}))
	defer server.Close()

	client := llama.NewClient(llama.Config{Host: server.URL})

	if err := client.Pull(context.Background(), "missing-model"); err == nil {
		t.Error("Pull()应当返回错误")
	}
}

func TestClient_Chat(t *testing.T) {
	// 创建测试服务器
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/chat" {
			t.Errorf("无效的请求: %s %s", r.Method, r.URL.Path)
			return
		}

		var req llama.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("解析请求体失败: %v", err)
		}
		if req.Stream {
			t.Error("期望非流式请求")
		}

		resp := llama.ChatResponse{
			Model:     req.Model,
			CreatedAt: time.Now().Format(time.RFC3339),
			Message:   llama.ChatMessage{Role: "assistant", Content: "테스트 응답입니다"},
			Done:      true,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := llama.NewClient(llama.Config{Host: server.URL})

	messages := []llama.ChatMessage{
		{Role: "system", Content: "상담자입니다"},
		{Role: "user", Content: "안녕하세요"},
	}
	resp, err := client.Chat(context.Background(), "test-model", messages, llama.Options{Temperature: 0.7})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Message.Content != "테스트 응답입니다" {
		t.Errorf("Chat() = %v, want %v", resp.Message.Content, "테스트 응답입니다")
	}
	if !resp.Done {
		t.Error("Chat()响应未完成")
	}
}

func TestClient_ChatStream(t *testing.T) {
	// 创建流式测试服务器
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/chat" {
			t.Errorf("无效的请求: %s %s", r.Method, r.URL.Path)
			return
		}

		w.Header().Set("Content-Type", "application/x-ndjson")
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Error("不支持流式响应")
			return
		}

		// 发送流式响应
		responses := []llama.ChatResponse{
			{Model: "test-model", Message: llama.ChatMessage{Role: "assistant", Content: "첫"}, Done: false},
			{Model: "test-model", Message: llama.ChatMessage{Role: "assistant", Content: " 번째"}, Done: false},
			{Model: "test-model", Message: llama.ChatMessage{Role: "assistant", Content: " 조각"}, Done: true},
		}

		for _, resp := range responses {
			data, err := json.Marshal(resp)
			if err != nil {
				t.Errorf("序列化响应失败: %v", err)
				return
			}
			w.Write(data)
			w.Write([]byte("\n"))
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := llama.NewClient(llama.Config{Host: server.URL})

	// 测试流式生成
	var fragments []string
	err := client.ChatStream(context.Background(), "test-model", []llama.ChatMessage{
		{Role: "user", Content: "안녕"},
	}, llama.Options{}, func(resp *llama.ChatResponse) error {
		fragments = append(fragments, resp.Message.Content)
		return nil
	})

	// 验证结果
	if err != nil {
		t.Errorf("ChatStream() error = %v", err)
	}
	expected := []string{"첫", " 번째", " 조각"}
	if len(fragments) != len(expected) {
		t.Fatalf("期望收到%d个片段，实际收到%d个", len(expected), len(fragments))
	}
	for i, want := range expected {
		if fragments[i] != want {
			t.Errorf("片段#%d = %v, want %v", i+1, fragments[i], want)
		}
	}
}

func TestClient_ChatStreamServerError(t *testing.T) {
	// 创建返回500错误的测试服务器
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("服务器内部错误"))
	}))
	defer server.Close()

	client := llama.NewClient(llama.Config{Host: server.URL})

	err := client.ChatStream(context.Background(), "test-model", nil, llama.Options{}, func(resp *llama.ChatResponse) error {
		t.Error("不应收到任何片段")
		return nil
	})
	if err == nil {
		t.Error("ChatStream()应当返回错误")
	}
}
