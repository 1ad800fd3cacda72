package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/config"
	"mindcheck-service/internal/gemini"
	"mindcheck-service/internal/infra/memory"
	"mindcheck-service/internal/infra/postgres"
	redisinfra "mindcheck-service/internal/infra/redis"
	"mindcheck-service/internal/infra/sqlite"
	"mindcheck-service/internal/insights"
	"mindcheck-service/internal/quiz"
	transport "mindcheck-service/internal/transport/http"
)

// components is everything the HTTP layer needs plus the resources to release
// on shutdown.
type components struct {
	deps    transport.Deps
	closers []func()
}

func (c *components) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}
	return client, nil
}

func buildComponents(ctx context.Context, cfg config.Config, log *zap.Logger) (*components, error) {
	c := &components{}
	fail := func(err error) (*components, error) {
		c.close()
		return nil, err
	}

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	if redisClient != nil {
		c.closers = append(c.closers, func() { redisClient.Close() })
	}

	// Bundled questionnaires back up whatever Postgres does not hold.
	var loader memory.QuestionnaireLoader = memory.NewStaticLoader(quiz.Bundled())
	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, log); err != nil {
			return fail(err)
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return fail(fmt.Errorf("connect postgres: %w", err))
		}
		c.closers = append(c.closers, pool.Close)
		loader = memory.NewChainLoader(postgres.NewQuestionnaireLoader(pool), loader)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	attemptTTL := config.TTLDuration(cfg.Quiz.AttemptTTL, 2*time.Hour)
	resultTTL := config.TTLDuration(cfg.Quiz.ResultTTL, 30*time.Minute)

	var (
		questionnaires app.QuestionnaireRepository
		attempts       app.AttemptRepository
		handoffs       app.HandoffStore
	)
	if redisClient != nil {
		questionnaires = redisinfra.NewQuestionnaireRepository(redisClient, loader, quizTTL)
		attempts = redisinfra.NewAttemptStore(redisClient, attemptTTL)
		handoffs = redisinfra.NewHandoffStore(redisClient, resultTTL)
	} else {
		questionnaires = memory.NewQuestionnaireRepository(loader, quizTTL)
		attempts = memory.NewAttemptStore(attemptTTL)
		handoffs = memory.NewHandoffStore(resultTTL)
	}

	policy := quiz.PreserveOnRetreat
	if cfg.Quiz.RetreatPolicy == "discard" {
		policy = quiz.DiscardOnRetreat
	}
	c.deps.Quiz = app.NewQuizService(questionnaires, attempts, handoffs, log, app.WithDefaultRetreatPolicy(policy))

	var stories app.StoryStore
	switch cfg.Stories.Backend {
	case "redis":
		stories = redisinfra.NewStoryStore(redisClient)
	case "sqlite":
		path := cfg.Stories.SQLitePath
		if path == "" {
			path = "data/stories.db"
		}
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return fail(err)
		}
		c.closers = append(c.closers, func() { store.Close() })
		stories = store
	default:
		stories = memory.NewStoryStore()
	}
	c.deps.Stories = app.NewStoryService(stories)

	if cfg.Chat.APIKey == "" {
		log.Warn("no model API key configured, chat routes disabled")
	} else {
		generator, err := gemini.New(ctx, gemini.Config{
			Provider: cfg.Chat.Provider,
			APIKey:   cfg.Chat.APIKey,
			Model:    cfg.Chat.Model,
			BaseURL:  cfg.Chat.BaseURL,
			Timeout:  config.TTLDuration(cfg.Chat.Timeout, 0),
		}, log)
		if err != nil {
			return fail(err)
		}
		var opts []chat.SessionOption
		if d := config.TTLDuration(cfg.Chat.Timeout, 0); d > 0 {
			opts = append(opts, chat.WithCallTimeout(d))
		}
		c.deps.Chat = app.NewChatService(memory.NewChatStore(config.TTLDuration(cfg.Chat.SessionTTL, 30*time.Minute)), generator, log, opts...)
	}

	if p := cfg.Insights.DiagnosesPath; p != "" {
		records, err := insights.LoadDiagnoses(p)
		if err != nil {
			return fail(err)
		}
		series := insights.DiagnosesPerYear(records)
		c.deps.Insights.Diagnoses = &series
	}
	if p := cfg.Insights.PrevalencePath; p != "" {
		records, err := insights.LoadPrevalence(p)
		if err != nil {
			return fail(err)
		}
		series := insights.PrevalenceByGender(records)
		c.deps.Insights.Prevalence = &series
	}

	c.deps.Logger = log
	c.deps.AllowedOrigins = cfg.Server.AllowedOrigins
	c.deps.SecureCookies = cfg.Server.SecureCookies
	return c, nil
}
