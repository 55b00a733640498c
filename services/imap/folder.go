package imap

import (
	"context"

	"github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	mailsweep_errors "github.com/customeros/mailsweep/errors"
	"github.com/customeros/mailsweep/internal/models"
	"github.com/customeros/mailsweep/internal/tracing"
)

// loadFolders merges LIST and LSUB responses into one deduplicated listing.
// Some servers only expose folders through LSUB, so both are consulted; a
// failure of either command alone is tolerated.
func (s *Session) loadFolders(ctx context.Context) []models.Folder {
	span, _ := opentracing.StartSpanFromContext(ctx, "Session.loadFolders")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	listed, err := s.listCommand(false)
	if err != nil {
		s.log.Warnf("LIST failed: %v", err)
		tracing.TraceErr(span, err)
	}

	subscribed, err := s.listCommand(true)
	if err != nil {
		s.log.Warnf("LSUB failed: %v", err)
		tracing.TraceErr(span, err)
	}

	folders := mergeFolderListings(listed, subscribed)
	span.SetTag("folders.count", len(folders))
	return folders
}

// mergeFolderListings combines listings in order, keeping the first
// occurrence of each name and dropping degenerate entries.
func mergeFolderListings(listings ...[]models.Folder) []models.Folder {
	var total int
	for _, listing := range listings {
		total += len(listing)
	}

	seen := make(map[string]bool, total)
	folders := make([]models.Folder, 0, total)
	for _, listing := range listings {
		for _, folder := range listing {
			if !folder.Valid() || seen[folder.Name] {
				continue
			}
			seen[folder.Name] = true
			folders = append(folders, folder)
		}
	}
	return folders
}

func (s *Session) listCommand(subscribed bool) ([]models.Folder, error) {
	c := s.client
	c.Timeout = commandTimeout
	defer func() { c.Timeout = 0 }()

	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		if subscribed {
			done <- c.Lsub("", "*", mailboxes)
		} else {
			done <- c.List("", "*", mailboxes)
		}
	}()

	var folders []models.Folder
	for m := range mailboxes {
		delimiter := m.Delimiter
		if delimiter == "" {
			delimiter = "/"
		}
		folders = append(folders, models.Folder{
			Attributes: m.Attributes,
			Delimiter:  delimiter,
			Name:       m.Name,
		})
	}

	if err := <-done; err != nil {
		return nil, err
	}
	return folders, nil
}

// Folders returns the listing cached at connect time.
func (s *Session) Folders() []models.Folder {
	return s.folders
}

func (s *Session) HasFolder(name string) bool {
	for _, folder := range s.folders {
		if folder.Name == name {
			return true
		}
	}
	return false
}

func (s *Session) Select(ctx context.Context, folder string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "Session.Select")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagFolder(span, folder)

	if s.client == nil {
		return mailsweep_errors.ErrNotConnected
	}

	s.client.Timeout = commandTimeout
	mbox, err := s.client.Select(folder, false)
	s.client.Timeout = 0

	if err != nil {
		s.selected = ""
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "selecting folder %s", folder)
	}

	s.selected = folder
	s.log.Debugf("selected folder %s, messages: %d", folder, mbox.Messages)
	span.SetTag("messages.total", mbox.Messages)
	return nil
}
