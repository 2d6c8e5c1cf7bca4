package main

import (
	"context"
	"fmt"
	"log"

	"ttm_chat_server/internal/clients/llama"
	"ttm_chat_server/internal/config"
	"ttm_chat_server/internal/middleware"
	"ttm_chat_server/internal/routes"
	"ttm_chat_server/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("TTM 챗봇 서버 시작 중...")

	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 创建运行时客户端
	runtimeClient := llama.NewClient(llama.Config{
		Host:  cfg.Runtime.Host,
		Token: cfg.Runtime.HubToken,
	})

	// 创建阶段注册表并在后台加载各阶段模型
	registry := services.NewRegistry(cfg, runtimeClient)
	go func() {
		registry.LoadAll(context.Background(), cfg.Runtime.PullTimeout)
		for _, status := range registry.Statuses() {
			log.Printf("阶段状态: stage=%s state=%s", status.Stage, status.State)
		}
	}()

	// 创建对话服务
	chatService := services.NewChatService(registry)

	// 创建HTTP服务器
	r := gin.New()
	middleware.Setup(r)
	routes.RegisterRoutes(r, chatService, cfg.WebSocket)

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("HTTP服务器监听: %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
