package mapping

import (
	"context"
	"errors"

	"github.com/eslsoft/vocnote/internal/entity"
)

// UserMessage turns an error into a short notice for the person at the terminal.
// Technical detail belongs in the log, not here.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, entity.ErrBlankWord):
		return "Please enter the word."
	case errors.Is(err, entity.ErrBlankMeaning):
		return "Please enter the meaning."
	case errors.Is(err, entity.ErrInvalidGoal):
		return "The daily goal must be a positive number."
	case errors.Is(err, entity.ErrValidation):
		return "That input is not valid."
	case errors.Is(err, entity.ErrNotFound):
		return "That word is not in your notebook."
	case errors.Is(err, entity.ErrUnreadableStore):
		return "Your saved notebook could not be read and was left untouched. " +
			"Run `vocnote import --replace-unreadable` to restore a backup."
	case errors.Is(err, entity.ErrParse):
		return "The file could not be read. Nothing was imported."
	case errors.Is(err, entity.ErrPersistence):
		return "Your changes could not be saved. They are kept for this session only."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	default:
		return "Something went wrong."
	}
}
