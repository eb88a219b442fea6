// recsvc 是混合推荐引擎的 HTTP facade。
//
// 路由：
//
//	GET /get-recommendations?userId=xxx  推荐列表
//	GET /healthz                         健康检查
//
// 错误策略：缺少 userId 返回 400；引擎内部失败记录完整日志，
// 对调用方只返回不透明的通用错误。
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rushteam/hybridrec/config"
	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/filter"
	"github.com/rushteam/hybridrec/service"
	"github.com/rushteam/hybridrec/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("app", "recsvc").Logger()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
	}

	snapStore, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build store")
	}
	defer snapStore.Close()

	opts := make([]service.Option, 0, 1)
	if len(cfg.Rules) > 0 {
		ruleFilters := make([]filter.Filter, 0, len(cfg.Rules))
		for _, expr := range cfg.Rules {
			rf, err := filter.NewRuleFilter(expr)
			if err != nil {
				logger.Fatal().Err(err).Str("rule", expr).Msg("compile rule")
			}
			ruleFilters = append(ruleFilters, rf)
		}
		opts = append(opts, service.WithFilters(ruleFilters...))
	}

	recommender, err := service.NewRecommender(snapStore, cfg.Engine, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("build recommender")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "store": snapStore.Name()})
	})

	e.GET("/get-recommendations", func(c echo.Context) error {
		userID := c.QueryParam("userId")
		if userID == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing userId"})
		}

		recs, err := recommender.GetRecommendations(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrMissingUserID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing userId"})
			}
			// 完整原因只进日志，不回给调用方
			logger.Error().Err(err).Str("user_id", userID).Msg("recommendation failed")
			if core.IsTrainTimeout(err) {
				return c.JSON(http.StatusServiceUnavailable,
					map[string]string{"error": "Recommendation engine busy, retry later"})
			}
			return c.JSON(http.StatusInternalServerError,
				map[string]string{"error": "Internal recommendation engine failure"})
		}
		return c.JSON(http.StatusOK, recs)
	})

	logger.Info().Str("addr", cfg.Server.Addr).Str("store", snapStore.Name()).Msg("recsvc listening")
	if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

// buildStore 按配置创建快照存储，memory 后端支持 JSONL 种子数据。
func buildStore(cfg config.AppConfig, logger zerolog.Logger) (core.SnapshotStore, error) {
	switch cfg.Store.Backend {
	case "redis":
		return store.NewRedisStore(cfg.Store.Redis.Addr, cfg.Store.Redis.DB)
	case "memory":
		ms := store.NewMemoryStore()
		if path := cfg.Store.Seed.Products; path != "" {
			n, err := ms.LoadProductsJSONL(path)
			if err != nil {
				return nil, fmt.Errorf("seed products: %w", err)
			}
			logger.Info().Int("count", n).Str("path", path).Msg("seeded products")
		}
		if path := cfg.Store.Seed.Interactions; path != "" {
			n, err := ms.LoadInteractionsJSONL(path)
			if err != nil {
				return nil, fmt.Errorf("seed interactions: %w", err)
			}
			logger.Info().Int("count", n).Str("path", path).Msg("seeded interactions")
		}
		return ms, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
