package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindcheck-service/internal/config"
	"mindcheck-service/internal/infra/memory"
	"mindcheck-service/internal/infra/postgres"
	redisinfra "mindcheck-service/internal/infra/redis"
	"mindcheck-service/internal/quiz"
)

// NewSeedCmd upserts the bundled questionnaires into Postgres and drops any
// cached copies so the next read picks up the new content.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled questionnaires into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrations(ctx, cfg, log); err != nil {
				return err
			}

			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			bundled := quiz.Bundled()
			if err := postgres.SeedQuestionnaires(ctx, pool, bundled); err != nil {
				return err
			}
			ids := make([]string, 0, len(bundled))
			for id := range bundled {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			log.Info("questionnaires seeded", zap.Strings("ids", ids))

			client, err := newRedisClient(ctx, cfg)
			if err != nil || client == nil {
				return err
			}
			defer client.Close()
			cache := redisinfra.NewQuestionnaireRepository(client, memory.NewStaticLoader(nil), config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute))
			for _, id := range ids {
				if err := cache.Invalidate(ctx, id); err != nil {
					return err
				}
			}
			log.Info("questionnaire cache invalidated", zap.Int("count", len(ids)))
			return nil
		},
	}
}
