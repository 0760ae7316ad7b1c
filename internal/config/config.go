package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Log        LogConfig        `mapstructure:"log"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"` // 单个请求体上限（含 multipart 开销）
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider      string `mapstructure:"provider"` // openai, azure, ark, gemini
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	VerifyModel   string `mapstructure:"verify_model"` // 图片分析使用的模型
	BaseURL       string `mapstructure:"base_url"`
	RequireAPIKey bool   `mapstructure:"require_api_key"` // 为 true 时缺少 key 直接启动失败，否则退化为 mock
}

// GenerationConfig 生成参数
type GenerationConfig struct {
	SVG       CompletionOptions `mapstructure:"svg"`
	Icon      CompletionOptions `mapstructure:"icon"`
	Verify    CompletionOptions `mapstructure:"verify"`
	IconDelay time.Duration     `mapstructure:"icon_delay"` // 图标批量生成时相邻两次调用的间隔
}

// CompletionOptions 单次补全调用参数
type CompletionOptions struct {
	MaxTokens   int      `mapstructure:"max_tokens"`
	Temperature *float64 `mapstructure:"temperature"` // nil 时使用 provider 默认值，0 也会下发
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"` // 每个窗口允许的请求数
	Window   time.Duration `mapstructure:"window"`
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	validProviders := map[string]bool{"openai": true, "azure": true, "ark": true, "gemini": true}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}

	if c.Generation.IconDelay < 0 {
		return errors.New("generation.icon_delay must not be negative")
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("rate_limit.requests and rate_limit.window must be positive when enabled")
	}

	return nil
}
