package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"svgsmith/internal/config"
	"svgsmith/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "svgsmith",
	Short: "SVGSmith - AI-powered SVG and icon set generator",
	Long: `SVGSmith turns text prompts and reference images into SVG graphics
and stylistically consistent icon sets using a multimodal completion model.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env 只补充未设置的环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.svgsmith")
	}

	// 环境变量设置
	viper.SetEnvPrefix("SVGSMITH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("ai.api_key", "SVGSMITH_AI_API_KEY", "OPENAI_API_KEY")

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "60s")
	viper.SetDefault("server.write_timeout", "10m")
	viper.SetDefault("server.allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://localhost:3000",
	})
	viper.SetDefault("server.max_body_bytes", 25<<20)

	// AI
	viper.SetDefault("ai.provider", "openai")
	// 为空时由各 provider 选择默认模型
	viper.SetDefault("ai.model", "")
	viper.SetDefault("ai.verify_model", "gpt-4o-mini")
	viper.SetDefault("ai.require_api_key", false)

	// Generation
	viper.SetDefault("generation.svg.max_tokens", 2000)
	viper.SetDefault("generation.svg.temperature", 0.7)
	viper.SetDefault("generation.icon.max_tokens", 1000)
	viper.SetDefault("generation.icon.temperature", 0.3)
	viper.SetDefault("generation.verify.max_tokens", 300)
	viper.SetDefault("generation.icon_delay", "500ms")

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// Redis
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// Rate limit
	viper.SetDefault("rate_limit.enabled", false)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "15m")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
