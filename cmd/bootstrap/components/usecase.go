package components

import (
	"clubcore/internal/domain/transaction"
	"clubcore/internal/handler/api"
	"clubcore/internal/handler/middleware"
	"clubcore/internal/pkg/clock"
	"clubcore/internal/usecase/commands"
	"clubcore/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	transaction.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			commands.NewAuthCommands,
			fx.As(new(api.AuthCommands)),
		),
		fx.Annotate(
			commands.NewCheckoutCommands,
			fx.As(new(api.CheckoutCommands)),
		),
		fx.Annotate(
			commands.NewPaymentCommands,
			fx.As(new(api.PaymentCommands)),
		),
		fx.Annotate(
			commands.NewCatalogCommands,
			fx.As(new(api.CatalogCommands)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			queries.NewTransactionQueries,
			fx.As(new(api.TransactionQueries)),
		),
		fx.Annotate(
			queries.NewCatalogQueries,
			fx.As(new(api.CatalogQueries)),
		),
		fx.Annotate(
			queries.NewUserQueries,
			fx.As(new(api.UserQueries)),
		),
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		fx.Annotate(
			queries.NewTokenValidator,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)
