// @title 职业测评后端 API
// @version 1.0
// @description 职业能力测评会话服务：出题、答题、评分与职业方向推荐。

// @contact.name API支持

// @host localhost:8080
// @BasePath /api

package main

import (
	"career_assess_backend/internal/app"
	"career_assess_backend/internal/config"
	"career_assess_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
