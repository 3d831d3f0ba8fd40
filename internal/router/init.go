package router

import (
	"github.com/oksasatya/account-service/internal/application"
	"github.com/oksasatya/account-service/internal/container"
	"github.com/oksasatya/account-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/account-service/internal/interface/http"
	"github.com/oksasatya/account-service/internal/router/modules"
	"github.com/oksasatya/account-service/pkg/phone"
)

type AccountModuleDeps struct {
	Service *application.Service
	Handler *handlers.AccountHandler
}

func buildAccountDeps() AccountModuleDeps {
	cfg := container.GetConfig()

	var indexer application.UserIndexer
	if es := container.GetES(); es != nil {
		indexer = search.NewUserIndexer(es, cfg.ESUsersIndex)
	}

	service := application.NewService(
		container.GetUserRepo(),
		phone.Resolver{},
		container.GetDispatcher(),
		indexer,
		container.GetLogger(),
		cfg,
	)

	return AccountModuleDeps{
		Service: service,
		Handler: handlers.NewAccountHandler(service, container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	rdb := container.GetRedis()

	accountDeps := buildAccountDeps()
	r.Add(modules.NewAccountModule(accountDeps.Handler, rdb, cfg.RateLimitMax, cfg.RateLimitWindow))

	system := handlers.NewSystemHandler(cfg.Env, container.GetUserRepo(), rdb, container.GetLogger())
	r.Add(modules.NewSystemModule(system, rdb, cfg.RateLimitMax, cfg.RateLimitWindow))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
