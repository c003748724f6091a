//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/part-describer/internal/bootstrap"
	"github.com/yanqian/part-describer/internal/domain/description"
	"github.com/yanqian/part-describer/internal/infra/config"
	httpiface "github.com/yanqian/part-describer/internal/interface/http"
	"github.com/yanqian/part-describer/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDescriptionConfig,
		provideSessionStore,
		description.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
