package interfaces

import (
	"context"

	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/models"
)

type CleanupService interface {
	// Run sweeps every account in order. It returns ErrRunCanceled when the
	// user aborted from the interactive prompt; any other returned error is
	// fatal to the whole run.
	Run(ctx context.Context, accounts []models.Account) error
}

// Confirmer gates destructive actions in interactive mode.
type Confirmer interface {
	Confirm(ctx context.Context, subject, body string, action enum.Action) (enum.Decision, error)
}
