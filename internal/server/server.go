package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "svgsmith/docs"
	"svgsmith/internal/ai"
	"svgsmith/internal/config"
	"svgsmith/internal/handler"
	"svgsmith/internal/handler/generate"
	"svgsmith/internal/handler/verify"
	"svgsmith/internal/pkg/cache"
	"svgsmith/internal/pkg/ratelimit"
	"svgsmith/internal/server/middleware"
	"svgsmith/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg       *config.Config
	engine    *gin.Engine
	redis     *cache.RedisCache
	completer ai.Completer
}

// New 创建服务器实例
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	completer, err := ai.NewCompleter(ctx, &cfg.AI)
	if err != nil {
		return nil, err
	}
	return NewWithCompleter(cfg, completer), nil
}

// NewWithCompleter 使用指定的补全实现创建服务器
func NewWithCompleter(cfg *config.Config, completer ai.Completer) *Server {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()
	engine.MaxMultipartMemory = 32 << 20

	// 初始化 Redis (可选)，只在启用限流时连接
	var redisCache *cache.RedisCache
	if cfg.RateLimit.Enabled && cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, using in-memory rate limiter")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:       cfg,
		engine:    engine,
		redis:     redisCache,
		completer: completer,
	}

	// 设置路由
	srv.setupRoutes()

	return srv
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(s.cfg.Server.AllowedOrigins))

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)
	s.engine.NoRoute(healthHandler.NotFound)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	gen := s.cfg.Generation
	svgSvc := service.NewSVGService(s.completer, gen.SVG)
	iconSvc := service.NewIconService(s.completer, gen.Icon, gen.IconDelay)
	verifySvc := service.NewVerifyService(s.completer, verifyModel(&s.cfg.AI), gen.Verify)

	api := s.engine.Group("/api")
	api.Use(middleware.BodyLimit(s.cfg.Server.MaxBodyBytes))
	if limiter := s.rateLimiter(); limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	{
		genHdl := generate.NewHandler(svgSvc, iconSvc)
		api.POST("/generate/svg", genHdl.GenerateSVG)
		api.POST("/generate/icon-set", genHdl.GenerateIconSet)
		api.POST("/generate/icon-set/add", genHdl.AddIconToSet)

		verifyHdl := verify.NewHandler(verifySvc)
		api.POST("/verify-generation", verifyHdl.VerifyGeneration)
	}
}

// rateLimiter Redis 可用时多实例共享计数，否则退化为进程内计数
func (s *Server) rateLimiter() ratelimit.Limiter {
	rl := s.cfg.RateLimit
	if !rl.Enabled {
		return nil
	}
	if s.redis != nil {
		return ratelimit.NewRedisLimiter(s.redis, rl.Requests, rl.Window)
	}
	return ratelimit.NewMemoryLimiter(rl.Requests, rl.Window)
}

// verifyModel 单独的分析模型只对 OpenAI 兼容接口生效，其他 Provider 使用默认模型
func verifyModel(cfg *config.AIConfig) string {
	switch cfg.Provider {
	case "openai", "azure", "":
		return cfg.VerifyModel
	default:
		return ""
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return err
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
