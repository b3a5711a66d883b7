package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/retailhub/pos-api/internal/clock"
	"github.com/retailhub/pos-api/internal/config"
	"github.com/retailhub/pos-api/internal/migration"
	"github.com/retailhub/pos-api/internal/observability"
	"github.com/retailhub/pos-api/internal/server"
	"github.com/retailhub/pos-api/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
