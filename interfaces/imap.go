package interfaces

import (
	"context"
	"time"

	"github.com/customeros/mailsweep/internal/models"
)

// MailboxClient is the narrow operation set the cleanup core needs from an
// IMAP connection. One client is owned by exactly one account sweep for the
// lifetime of that sweep.
type MailboxClient interface {
	Connect(ctx context.Context) error
	Close() error

	// Folders returns the cached folder listing built at connect time.
	Folders() []models.Folder
	HasFolder(name string) bool
	Select(ctx context.Context, folder string) error

	// UIDNext reports the folder's next-UID counter. ok is false when the
	// counter could not be determined.
	UIDNext(ctx context.Context) (uid uint32, ok bool)
	SearchUIDRange(ctx context.Context, from, to uint32) ([]uint32, error)
	SearchAllUIDs(ctx context.Context) ([]uint32, error)

	FetchMessage(ctx context.Context, uid uint32) ([]byte, error)
	FetchDate(ctx context.Context, uid uint32) (time.Time, error)

	Copy(ctx context.Context, uid uint32, folder string) error
	MarkDeleted(ctx context.Context, uid uint32) error
	Expunge(ctx context.Context) error
}
