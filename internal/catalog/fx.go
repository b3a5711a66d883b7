package catalog

import (
	"github.com/retailhub/pos-api/internal/catalog/repository"
	"github.com/retailhub/pos-api/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
