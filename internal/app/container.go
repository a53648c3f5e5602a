package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocnote/internal/infrastructure/config"
	"github.com/eslsoft/vocnote/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Options    usecase.Config
	Vocabulary usecase.VocabularyUsecase
}
