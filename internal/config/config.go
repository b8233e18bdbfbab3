package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 汇总服务启动时读取的全部配置。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Site   SiteConfig
}

// Load 从环境变量加载配置，非法取值直接报错。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	site, err := loadSiteConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Site: site}, nil
}

// ServerConfig 描述 HTTP 监听配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 由 PORT 推导监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := envString("PORT", "8080")

	switch {
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	case strings.Contains(port, ":"):
		// 完整地址（":8080"、"127.0.0.1:8080"）原样使用。
		return ServerConfig{Addr: port}, nil
	default:
		return ServerConfig{Addr: ":" + port}, nil
	}
}

// 支持的补全服务提供方。
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// 系统提示词的两种版本。
const (
	PromptFull    = "full"
	PromptConcise = "concise"
)

// AIConfig 描述上游补全接口与助手人设。
type AIConfig struct {
	Provider      string
	APIKey        string
	BaseURL       string
	Model         string
	Region        string
	MaxTokens     int
	Timeout       time.Duration
	PersonaID     string
	PromptVariant string
	SystemPrompt  string
}

// Configured 表示是否提供了上游密钥。
func (c AIConfig) Configured() bool {
	return c.APIKey != ""
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(envString("LLM_PROVIDER", ProviderOpenAI))

	maxTokens, err := envInt("OPENAI_MAX_TOKENS", 500, 1)
	if err != nil {
		return AIConfig{}, err
	}

	timeout, err := envDuration("CHAT_TIMEOUT", 30*time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	variant := strings.ToLower(envString("CHAT_PROMPT_VARIANT", PromptFull))
	if variant != PromptFull && variant != PromptConcise {
		return AIConfig{}, fmt.Errorf("invalid CHAT_PROMPT_VARIANT value %q", variant)
	}

	cfg := AIConfig{
		Provider:      provider,
		MaxTokens:     maxTokens,
		Timeout:       timeout,
		PersonaID:     envString("CHAT_PERSONA", "turabot"),
		PromptVariant: variant,
		SystemPrompt:  envString("CHAT_SYSTEM_PROMPT", ""),
	}

	switch provider {
	case ProviderOpenAI:
		cfg.APIKey = envString("OPENAI_API_KEY", "")
		cfg.BaseURL = strings.TrimRight(envString("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/")
		cfg.Model = envString("OPENAI_MODEL", "gpt-3.5-turbo")
	case ProviderArk:
		cfg.APIKey = envString("ARK_API_KEY", "")
		cfg.BaseURL = envString("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
		cfg.Region = envString("ARK_REGION", "cn-beijing")
		cfg.Model = envString("ARK_MODEL", "")
		if cfg.Model == "" {
			return AIConfig{}, fmt.Errorf("ARK_MODEL is required when LLM_PROVIDER=ark")
		}
	default:
		return AIConfig{}, fmt.Errorf("invalid LLM_PROVIDER value %q", provider)
	}

	return cfg, nil
}

// SiteConfig 描述聊天接口之外的站点配置。
type SiteConfig struct {
	StaticDir        string
	AllowedOrigin    string
	RateLimit        int
	RateWindow       time.Duration
	WebSocketEnabled bool
}

func loadSiteConfig() (SiteConfig, error) {
	// 0 表示不限流。
	limit, err := envInt("CHAT_RATE_LIMIT", 0, 0)
	if err != nil {
		return SiteConfig{}, err
	}

	window, err := envDuration("CHAT_RATE_WINDOW", time.Minute)
	if err != nil {
		return SiteConfig{}, err
	}

	wsEnabled, err := envBool("CHAT_WEBSOCKET_ENABLED", true)
	if err != nil {
		return SiteConfig{}, err
	}

	return SiteConfig{
		StaticDir:        envString("STATIC_DIR", ""),
		AllowedOrigin:    envString("CORS_ALLOWED_ORIGIN", "*"),
		RateLimit:        limit,
		RateWindow:       window,
		WebSocketEnabled: wsEnabled,
	}, nil
}

// envString 返回去除空白后的变量值，未设置或为空时返回 fallback。
func envString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// envInt 解析整数变量，取值不得小于 floor。
func envInt(key string, fallback, floor int) (int, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if value < floor {
		return 0, fmt.Errorf("invalid %s value %d: must be at least %d", key, value, floor)
	}
	return value, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}

// envDuration 接受 Go 时长格式（"45s"）或纯秒数，必须为正。
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}

	value, err := time.ParseDuration(raw)
	if secs, convErr := strconv.Atoi(raw); convErr == nil {
		value, err = time.Duration(secs)*time.Second, nil
	}
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return value, nil
}
