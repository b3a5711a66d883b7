package purchase

import (
	"github.com/retailhub/pos-api/internal/purchase/repository"
	"github.com/retailhub/pos-api/internal/purchase/service"
	"go.uber.org/fx"
)

var Module = fx.Module("purchase.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
