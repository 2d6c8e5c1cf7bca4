// Package llama 提供生成运行时的HTTP客户端
package llama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Config 客户端配置
type Config struct {
	Host  string // 运行时服务器地址（完整URL）
	Token string // 模型仓库下载令牌，可为空
}

// Client 生成运行时客户端
type Client struct {
	config Config
	client *http.Client
}

// Options 生成选项
type Options struct {
	Temperature      float64 `json:"temperature,omitempty"`       // 温度参数
	TopP             float64 `json:"top_p,omitempty"`             // Top-p采样
	TopK             int     `json:"top_k,omitempty"`             // Top-k采样
	MaxTokens        int     `json:"num_predict,omitempty"`       // 最大生成token数
	RepeatPenalty    float64 `json:"repeat_penalty,omitempty"`    // 重复惩罚
	FrequencyPenalty float64 `json:"frequency_penalty,omitempty"` // 频率惩罚
	PresencePenalty  float64 `json:"presence_penalty,omitempty"`  // 出现惩罚
}

// ChatMessage 对话消息
type ChatMessage struct {
	Role    string `json:"role"`    // 消息角色：system/user/assistant
	Content string `json:"content"` // 消息内容
}

// ChatRequest 对话生成请求参数
type ChatRequest struct {
	Model    string        `json:"model"`             // 模型名称
	Messages []ChatMessage `json:"messages"`          // 对话消息列表
	Stream   bool          `json:"stream"`            // 是否流式输出
	Options  Options       `json:"options,omitempty"` // 可选参数
}

// ChatResponse 对话生成响应
type ChatResponse struct {
	Model         string      `json:"model"`           // 模型名称
	CreatedAt     string      `json:"created_at"`      // 创建时间
	Message       ChatMessage `json:"message"`         // 本次生成的消息片段
	Done          bool        `json:"done"`            // 是否完成
	DoneReason    string      `json:"done_reason"`     // 完成原因
	TotalDuration int64       `json:"total_duration"`  // 总耗时(纳秒)
	LoadDuration  int64       `json:"load_duration"`   // 加载耗时(纳秒)
	EvalCount     int         `json:"eval_count"`      // 生成token数量
	EvalDuration  int64       `json:"eval_duration"`   // 生成耗时(纳秒)
}

// PullRequest 模型拉取请求参数
type PullRequest struct {
	Name   string `json:"name"`   // 模型名称
	Stream bool   `json:"stream"` // 是否流式返回进度
}

// PullResponse 模型拉取响应
type PullResponse struct {
	Status string `json:"status"`          // 拉取状态
	Error  string `json:"error,omitempty"` // 错误信息
}

// NewClient 创建新的运行时客户端
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{},
	}
}

// Pull 从模型仓库拉取并加载模型，首次拉取可能长时间阻塞
func (c *Client) Pull(ctx context.Context, model string) error {
	reqBody := PullRequest{
		Name:   model,
		Stream: false,
	}

	var response PullResponse
	if err := c.post(ctx, "/api/pull", reqBody, &response); err != nil {
		return err
	}

	if response.Error != "" {
		return fmt.Errorf("拉取模型失败: %s", response.Error)
	}
	if response.Status != "success" {
		return fmt.Errorf("拉取模型未完成: %s", response.Status)
	}
	return nil
}

// Chat 生成对话回复
func (c *Client) Chat(ctx context.Context, model string, messages []ChatMessage, options Options) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options:  options,
	}

	var response ChatResponse
	if err := c.post(ctx, "/api/chat", reqBody, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ChatStream 流式生成对话回复，每个片段回调一次
func (c *Client) ChatStream(ctx context.Context, model string, messages []ChatMessage, options Options, callback func(*ChatResponse) error) error {
	// 准备请求体
	reqBody := ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
		Options:  options,
	}

	resp, err := c.send(ctx, "/api/chat", reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 创建解码器，逐行读取流式响应
	decoder := json.NewDecoder(resp.Body)

	for decoder.More() {
		var response ChatResponse
		if err := decoder.Decode(&response); err != nil {
			return fmt.Errorf("解析响应失败: %v", err)
		}

		if err := callback(&response); err != nil {
			return fmt.Errorf("处理响应失败: %v", err)
		}

		if response.Done {
			break
		}
	}

	return nil
}

// post 发送请求并解析单个JSON响应
func (c *Client) post(ctx context.Context, path string, reqBody interface{}, out interface{}) error {
	resp, err := c.send(ctx, path, reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %v", err)
	}
	return nil
}

// send 发送请求并检查响应状态码
func (c *Client) send(ctx context.Context, path string, reqBody interface{}) (*http.Response, error) {
	// 序列化请求体
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %v", err)
	}

	// 构建请求URL
	url := fmt.Sprintf("%s%s", c.config.Host, path)

	// 创建请求
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %v", err)
	}

	// 设置请求头
	req.Header.Set("Content-Type", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	// 发送请求
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %v", err)
	}

	// 检查响应状态码
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("服务器返回错误: %s", string(body))
	}

	return resp, nil
}
