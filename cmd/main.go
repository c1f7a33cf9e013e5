package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mirrorfish/notion-anki-bridge/api"
	"github.com/mirrorfish/notion-anki-bridge/api/handler"
	"github.com/mirrorfish/notion-anki-bridge/api/middleware"
	bridgeconfig "github.com/mirrorfish/notion-anki-bridge/config"
	"github.com/mirrorfish/notion-anki-bridge/internal/anki"
	"github.com/mirrorfish/notion-anki-bridge/internal/llm"
	"github.com/mirrorfish/notion-anki-bridge/internal/metrics"
	"github.com/mirrorfish/notion-anki-bridge/internal/notion"
	"github.com/mirrorfish/notion-anki-bridge/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// 配置选项
type config struct {
	Port         int           // 服务端口
	Mode         string        // 运行模式 (debug/release)
	LogLevel     string        // 日志级别
	ReadTimeout  time.Duration // 读取超时
	WriteTimeout time.Duration // 写入超时
	ConfigFile   string        // 配置文件路径
	DemoPage     string        // 演示页面名称，非空时执行演示流程后退出
}

func main() {
	// 解析命令行参数
	cfg := parseFlags()

	// 加载.env文件，密钥可以从本地文件注入(文件缺失时忽略)
	_ = godotenv.Load()

	// 加载配置文件
	appConfig, err := bridgeconfig.Load(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	updateConfigFromFile(&cfg, appConfig)

	// 设置Gin模式
	gin.SetMode(cfg.Mode)

	// 初始化日志
	logger := setupLogger(cfg.LogLevel)
	if appConfig.Log.File != "" {
		middleware.SetupFileLogging(appConfig.Log.File, appConfig.Log.MaxSize, appConfig.Log.MaxBackups, appConfig.Log.MaxAge)
		logger.WithField("file", appConfig.Log.File).Info("Logging to rotating file")
	}
	logger.Info("Starting Notion-Anki bridge service...")

	// 所有工具都依赖文档服务，密钥缺失时直接终止
	if !appConfig.HasNotionKey() {
		logger.Fatal("NOTION_API_KEY environment variable is required")
	}

	// 创建Notion客户端
	notionClient, err := setupNotion(appConfig, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize Notion client: %v", err)
	}

	// 创建大语言模型卡片生成器
	generator, err := setupGenerator(appConfig, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize LLM client: %v", err)
	}

	// 创建AnkiConnect客户端
	ankiClient := setupAnki(appConfig, logger)

	// 注册业务指标
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// 初始化闪卡流水线服务
	flashcardService := services.NewFlashcardService(
		notionClient,
		generator,
		ankiClient,
		services.WithFlashcardLogger(logger),
		services.WithFlashcardMetrics(m),
	)

	// 启动自检：确认AnkiConnect可达，失败只告警不中断启动
	checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if version, err := flashcardService.CheckAnkiConnection(checkCtx); err != nil {
		logger.WithError(err).Warn("AnkiConnect is not reachable, card publishing will fail until Anki is running")
	} else {
		logger.WithField("version", version).Info("Connected to AnkiConnect")
	}
	checkCancel()

	// 演示模式：执行一次完整的生成流程后退出
	if cfg.DemoPage != "" {
		if err := runDemo(flashcardService, cfg.DemoPage, logger); err != nil {
			logger.Fatalf("Demo failed: %v", err)
		}
		return
	}

	// 初始化API处理器
	pageHandler := handler.NewPageHandler(flashcardService)
	flashcardHandler := handler.NewFlashcardHandler(flashcardService)

	// 设置路由
	r := api.SetupRouter(pageHandler, flashcardHandler, m)

	// 启动HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", appConfig.Server.Host, cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// 优雅关闭
	go func() {
		// 启动服务
		logger.Infof("Server is running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// 创建带超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// parseFlags 解析命令行参数
func parseFlags() config {
	cfg := config{}

	// 服务配置
	flag.IntVar(&cfg.Port, "port", 8080, "Server port")
	flag.StringVar(&cfg.Mode, "mode", "debug", "Run mode (debug/release)")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	flag.DurationVar(&cfg.ReadTimeout, "read-timeout", 30*time.Second, "Read timeout")
	flag.DurationVar(&cfg.WriteTimeout, "write-timeout", 30*time.Second, "Write timeout")

	// 配置文件
	flag.StringVar(&cfg.ConfigFile, "config", "config.yaml", "Path to config file")

	// 演示模式
	flag.StringVar(&cfg.DemoPage, "demo", "", "Run the flashcard pipeline against the named page and exit")

	flag.Parse()
	return cfg
}

// updateConfigFromFile 从配置文件更新命令行参数
func updateConfigFromFile(cfg *config, appConfig *bridgeconfig.Config) {
	// 只更新未在命令行上明确设置的参数
	if flag.Lookup("port").DefValue == fmt.Sprint(cfg.Port) {
		cfg.Port = appConfig.Server.Port
	}
}

// setupLogger 设置日志系统
func setupLogger(level string) *logrus.Logger {
	logger := middleware.GetLogger()

	// 设置日志级别
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// setupNotion 设置Notion客户端
func setupNotion(appConfig *bridgeconfig.Config, logger *logrus.Logger) (notion.Client, error) {
	return notion.NewHTTPClient(
		notion.WithAPIKey(appConfig.Notion.APIKey),
		notion.WithBaseURL(appConfig.Notion.BaseURL),
		notion.WithVersion(appConfig.Notion.Version),
		notion.WithTimeout(appConfig.Notion.Timeout),
		notion.WithLogger(logger),
	)
}

// setupGenerator 设置大语言模型卡片生成器
// 密钥缺失只降级告警，生成工具在请求时才会失败
func setupGenerator(appConfig *bridgeconfig.Config, logger *logrus.Logger) (*llm.Generator, error) {
	apiKey := appConfig.LLM.APIKey
	if !appConfig.HasLLMKey() {
		logger.Warn("LLM API key is not configured, flashcard generation will be unavailable")
		apiKey = ""
	}

	opts := []llm.Option{
		llm.WithAPIKey(apiKey),
		llm.WithModel(appConfig.LLM.Model),
		llm.WithMaxTokens(appConfig.LLM.MaxTokens),
		llm.WithTemperature(appConfig.LLM.Temperature),
		llm.WithTimeout(appConfig.LLM.Timeout),
	}
	if appConfig.LLM.Endpoint != "" {
		opts = append(opts, llm.WithBaseURL(appConfig.LLM.Endpoint))
	}

	client, err := llm.NewClient(appConfig.LLM.Provider, opts...)
	if err != nil {
		return nil, err
	}

	return llm.NewGenerator(client), nil
}

// setupAnki 设置AnkiConnect客户端
func setupAnki(appConfig *bridgeconfig.Config, logger *logrus.Logger) anki.Client {
	return anki.NewHTTPClient(
		anki.WithEndpoint(appConfig.Anki.Endpoint),
		anki.WithTimeout(appConfig.Anki.Timeout),
		anki.WithLogger(logger),
	)
}

// runDemo 对指定页面执行一次完整的闪卡生成流程
// 与工具链的顺序一致：查找页面、提取内容、生成卡片、发布到Anki
func runDemo(service *services.FlashcardService, pageName string, logger *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.WithField("page_name", pageName).Info("Running demo pipeline")

	// 1. 查找页面
	page, err := service.FindPage(ctx, pageName)
	if err != nil {
		return fmt.Errorf("page search failed: %w", err)
	}
	if page == nil {
		return fmt.Errorf("demo page '%s' not found", pageName)
	}

	// 2. 提取主题和问答内容
	topics, content, err := service.ExtractContent(ctx, page.ID)
	if err != nil {
		return fmt.Errorf("content extraction failed: %w", err)
	}
	if len(content) == 0 {
		return fmt.Errorf("no question-answer content found in page '%s'", pageName)
	}
	logger.WithFields(logrus.Fields{
		"topics":   len(topics),
		"qa_pairs": len(content),
	}).Info("Extracted demo content")

	// 3. 生成闪卡
	notes, err := service.GenerateNotes(ctx, pageName, topics, content)
	if err != nil {
		return fmt.Errorf("flashcard generation failed: %w", err)
	}
	if len(notes) == 0 {
		return fmt.Errorf("no flashcards were generated")
	}

	// 4. 发布到Anki
	result := service.Publish(ctx, pageName, notes)
	if result.Status != services.PublishStatusAdded {
		return fmt.Errorf("failed to publish flashcards: %s", result.Message)
	}

	logger.Infof("Demo completed successfully: %d cards created", len(notes))
	return nil
}
