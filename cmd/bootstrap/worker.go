package bootstrap

import (
	"context"

	"clubcore/internal/infra/mailer"
	"clubcore/internal/infra/outbox"
	"clubcore/internal/pkg/clock"
	"clubcore/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(startOutboxWorker),
)

func startOutboxWorker(lc fx.Lifecycle, pool *pgxpool.Pool, m mailer.Mailer, clk clock.Clock, cfg config.OutboxConfig) {
	worker := outbox.NewWorker(pool, m, clk, cfg)

	// The worker outlives individual requests; cancel drains the loop.
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			worker.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			worker.Stop()
			return nil
		},
	})
}
