package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mirrorfish/notion-anki-bridge/internal/anki"
	"github.com/spf13/viper"
)

// Config 应用程序配置结构体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Notion NotionConfig `mapstructure:"notion"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Anki   AnkiConfig   `mapstructure:"anki"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"` // 服务器主机
	Port int    `mapstructure:"port"` // 服务器端口
}

// NotionConfig Notion接入配置
type NotionConfig struct {
	APIKey  string        `mapstructure:"api_key"`  // 集成密钥，支持${VAR}占位符
	BaseURL string        `mapstructure:"base_url"` // API基础地址
	Version string        `mapstructure:"version"`  // Notion-Version请求头
	Timeout time.Duration `mapstructure:"timeout"`  // 请求超时时间
}

// LLMConfig 大语言模型配置
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`    // 提供商：openai 或 langchain
	Model       string        `mapstructure:"model"`       // 模型名称
	APIKey      string        `mapstructure:"api_key"`     // API密钥，支持${VAR}占位符
	Endpoint    string        `mapstructure:"endpoint"`    // API端点，为空时使用提供商默认值
	MaxTokens   int           `mapstructure:"max_tokens"`  // 最大生成token数量
	Temperature float32       `mapstructure:"temperature"` // 采样温度
	Timeout     time.Duration `mapstructure:"timeout"`     // 请求超时时间
}

// AnkiConfig AnkiConnect配置
// 端点默认指向固定的本地地址，密钥展开不作用于此节
type AnkiConfig struct {
	Endpoint string        `mapstructure:"endpoint"` // AnkiConnect地址
	Timeout  time.Duration `mapstructure:"timeout"`  // 请求超时时间
}

// LogConfig 日志配置
type LogConfig struct {
	File       string `mapstructure:"file"`        // 日志文件路径，为空时只输出到标准输出
	MaxSize    int    `mapstructure:"max_size"`    // 单个日志文件上限(MB)
	MaxBackups int    `mapstructure:"max_backups"` // 保留的轮转文件数
	MaxAge     int    `mapstructure:"max_age"`     // 轮转文件保留天数
}

// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	var config Config

	// 设置默认配置路径
	if configPath == "" {
		configPath = "config.yaml" // 默认在当前目录寻找config.yaml
	}

	// 初始化viper
	v := viper.New()

	// 设置配置文件路径和类型
	v.SetConfigFile(configPath)

	// 尝试读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，创建一个默认配置文件
		// 指定具体文件路径时viper报os.PathError而不是ConfigFileNotFoundError
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			log.Printf("Warning: Config file not found at %s, using defaults", configPath)
			setDefaults(v)
			// 创建默认配置文件
			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err == nil {
				if err := v.WriteConfigAs(configPath); err != nil {
					log.Printf("Warning: Could not write default config to %s: %v", configPath, err)
				}
			}
		} else {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	} else {
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	// 设置默认值
	setDefaults(v)

	// 支持环境变量覆盖
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置到结构体
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	// 展开密钥中的环境变量占位符
	resConfig := processEnvironmentVariables(&config)

	return resConfig, nil
}

// processEnvironmentVariables 展开密钥配置中的${VAR}占位符
// 环境变量不存在时保留原始占位符，由调用方判定密钥缺失
func processEnvironmentVariables(cfg *Config) *Config {
	// 处理Notion密钥
	if strings.HasPrefix(cfg.Notion.APIKey, "${") && strings.HasSuffix(cfg.Notion.APIKey, "}") {
		envVar := cfg.Notion.APIKey[2 : len(cfg.Notion.APIKey)-1]
		if envVal := os.Getenv(envVar); envVal != "" {
			cfg.Notion.APIKey = envVal
		}
	}

	// 处理LLM API密钥
	if strings.HasPrefix(cfg.LLM.APIKey, "${") && strings.HasSuffix(cfg.LLM.APIKey, "}") {
		envVar := cfg.LLM.APIKey[2 : len(cfg.LLM.APIKey)-1]
		if envVal := os.Getenv(envVar); envVal != "" {
			cfg.LLM.APIKey = envVal
		}
	}

	return cfg
}

// HasNotionKey 判断Notion密钥是否已经就绪
// 占位符未被展开说明对应的环境变量缺失
func (c *Config) HasNotionKey() bool {
	return c.Notion.APIKey != "" && !strings.HasPrefix(c.Notion.APIKey, "${")
}

// HasLLMKey 判断大模型密钥是否已经就绪
func (c *Config) HasLLMKey() bool {
	return c.LLM.APIKey != "" && !strings.HasPrefix(c.LLM.APIKey, "${")
}

// setDefaults 设置配置的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Notion默认配置
	v.SetDefault("notion.api_key", "${NOTION_API_KEY}")
	v.SetDefault("notion.base_url", "https://api.notion.com/v1")
	v.SetDefault("notion.version", "2022-06-28")
	v.SetDefault("notion.timeout", "30s")

	// LLM默认配置
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.api_key", "${OPENAI_API_KEY}")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "60s")

	// AnkiConnect默认配置，端点固定指向本地
	v.SetDefault("anki.endpoint", anki.DefaultEndpoint)
	v.SetDefault("anki.timeout", "30s")

	// 日志默认配置
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}
