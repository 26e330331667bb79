package router

import (
	"context"

	"github.com/oksasatya/foodshare/internal/application"
	"github.com/oksasatya/foodshare/internal/container"
	"github.com/oksasatya/foodshare/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/foodshare/internal/infrastructure/postgres"
	"github.com/oksasatya/foodshare/internal/infrastructure/search"
	"github.com/oksasatya/foodshare/internal/infrastructure/storage"
	handlers "github.com/oksasatya/foodshare/internal/interface/http"
	"github.com/oksasatya/foodshare/internal/router/modules"
	"github.com/oksasatya/foodshare/pkg/helpers"
)

type notifier interface {
	application.CodeDispatcher
	application.WelcomeNotifier
}

func buildNotifier() notifier {
	if pub := container.GetRabbitPub(); pub != nil {
		return notify.NewQueueDispatcher(pub, container.GetConfig().AppName)
	}
	return notify.NewLogDispatcher(container.GetLogger())
}

// optional backends stay nil interfaces when not configured
func buildFoodService() *application.FoodService {
	cfg := container.GetConfig()
	var images application.ImageStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		images = storage.NewImageStore(gcs, cfg.GCSBucket)
	}
	var index application.ListingIndex
	if es := container.GetES(); es != nil {
		index = search.NewListingIndex(es, cfg.ESListingsIndex)
	}
	return application.NewFoodService(
		pginfra.NewFoodRepository(container.GetPGPool()),
		images,
		index,
		container.GetLogger(),
	)
}

func healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{
		"postgres": func(ctx context.Context) error { return container.GetPGPool().Ping(ctx) },
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.ESPing(ctx, es) }
	}
	return checks
}

// InitModules builds the application services from the container singletons
// and registers every feature module. Call once during startup.
func InitModules(r *Registry) {
	logger := container.GetLogger()
	jwt := container.GetJWT()
	n := buildNotifier()

	codes := application.NewCodeService(container.GetCodeStore(), n, logger)
	auth := application.NewAuthService(
		pginfra.NewUserRepository(container.GetPGPool()),
		codes,
		jwt,
		application.NewGuard(container.GetCaptcha()),
		n,
		logger,
	)
	prefs := application.NewPreferenceService(pginfra.NewPreferenceRepository(container.GetPGPool()))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(codes, auth, logger), jwt))
	r.Add(modules.NewFoodModule(handlers.NewFoodHandler(buildFoodService(), logger), jwt))
	r.Add(modules.NewPreferenceModule(handlers.NewPreferenceHandler(prefs, logger)))
	r.Add(modules.NewDebugModule(handlers.NewHealthHandler(healthChecks()), container.GetConfig().DebugMetricsEnabled))
}
