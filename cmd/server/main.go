package main

import (
	"log"

	"github.com/jengzang/route-finder/internal/api"
	"github.com/jengzang/route-finder/internal/config"
	"github.com/jengzang/route-finder/internal/metrics"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	collector := metrics.NewCollector()

	// 初始化路由
	router := api.SetupRouter(cfg, collector)

	// 启动服务器
	log.Printf("Server starting on port %s, reading logs from %s", cfg.Port, cfg.LogDir)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
