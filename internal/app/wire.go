//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocnote/internal/infrastructure/config"
	"github.com/eslsoft/vocnote/internal/infrastructure/database"
	"github.com/eslsoft/vocnote/internal/infrastructure/logger"
	"github.com/eslsoft/vocnote/internal/usecase"
	"github.com/eslsoft/vocnote/internal/usecase/backup"
)

var configSet = wire.NewSet(
	config.Load,
	provideUsecaseConfig,
)

var loggerSet = wire.NewSet(
	logger.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	provideSnapshotRepository,
)

var usecaseSet = wire.NewSet(
	provideCodec,
	wire.Bind(new(usecase.SnapshotCodec), new(*backup.Service)),
	usecase.NewVocabularyUsecase,
)

// Initialize builds the application container using Wire.
func Initialize(ctx context.Context) (*Container, func(), error) {
	wire.Build(
		configSet,
		loggerSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		wire.Struct(new(Container), "Config", "Logger", "Options", "Vocabulary"),
	)
	return nil, nil, nil
}
