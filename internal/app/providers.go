package app

import (
	"context"

	"github.com/eslsoft/vocnote/internal/adapter/repository"
	"github.com/eslsoft/vocnote/internal/infrastructure/config"
	"github.com/eslsoft/vocnote/internal/infrastructure/database"
	repo "github.com/eslsoft/vocnote/internal/repository"
	"github.com/eslsoft/vocnote/internal/usecase"
	"github.com/eslsoft/vocnote/internal/usecase/backup"
)

func provideSnapshotRepository(ctx context.Context, db *database.DB, cfg *config.Config) (repo.SnapshotRepository, error) {
	return repository.NewSnapshotRepository(ctx, db, cfg.Storage.Key)
}

func provideCodec() *backup.Service {
	return backup.NewService()
}

func provideUsecaseConfig(cfg *config.Config) (usecase.Config, error) {
	loc, err := cfg.Location()
	if err != nil {
		return usecase.Config{}, err
	}
	return usecase.Config{
		Location:          loc,
		SeedExamples:      cfg.Seed.Examples,
		ReplaceUnreadable: cfg.Storage.ReplaceUnreadable,
	}, nil
}
