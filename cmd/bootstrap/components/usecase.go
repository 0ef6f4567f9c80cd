package components

import (
	"parkspot/internal/pkg/clock"
	"parkspot/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewBookingUseCase,
		usecase.NewUserUseCase,
	),
)
