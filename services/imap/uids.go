package imap

import (
	"context"

	"github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailsweep/interfaces"
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/tracing"
)

// DefaultChunkSize bounds each UID range search so that enumeration of very
// large folders never asks the server for one unbounded result set.
const DefaultChunkSize = 5000

// UIDNext reads the selected folder's next-UID counter via STATUS.
func (s *Session) UIDNext(ctx context.Context) (uint32, bool) {
	if s.client == nil || s.selected == "" {
		return 0, false
	}

	s.client.Timeout = commandTimeout
	status, err := s.client.Status(s.selected, []imap.StatusItem{imap.StatusUidNext})
	s.client.Timeout = 0

	if err != nil {
		s.log.Debugf("STATUS UIDNEXT failed for %s: %v", s.selected, err)
		return 0, false
	}
	return status.UidNext, true
}

func (s *Session) SearchUIDRange(ctx context.Context, from, to uint32) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Uid = new(imap.SeqSet)
	criteria.Uid.AddRange(from, to)
	return s.uidSearch(criteria)
}

func (s *Session) SearchAllUIDs(ctx context.Context) ([]uint32, error) {
	return s.uidSearch(imap.NewSearchCriteria())
}

func (s *Session) uidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	if s.client == nil {
		return nil, nil
	}
	s.client.Timeout = commandTimeout
	uids, err := s.client.UidSearch(criteria)
	s.client.Timeout = 0
	return uids, err
}

// ForEachUID enumerates every message UID present in the selected folder,
// invoking fn once per UID in ascending chunk order. When the UIDNEXT counter
// is available and indicates at least one assigned UID, the range [1,UIDNEXT)
// is partitioned into chunkSize-wide range searches; otherwise a single
// search-all is issued. A failed chunk is logged and skipped, never fatal.
// An error returned by fn stops enumeration and is returned as-is.
func ForEachUID(ctx context.Context, client interfaces.MailboxClient, chunkSize int, log logger.Logger, fn func(uid uint32) error) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ForEachUID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	next, ok := client.UIDNext(ctx)
	if ok && next > 1 {
		span.SetTag("uidnext", next)
		// bounds are computed in uint64 so the loop cannot wrap near the top
		// of the uint32 UID space
		last := uint64(next) - 1
		for start := uint64(1); start <= last; start += uint64(chunkSize) {
			end := start + uint64(chunkSize) - 1
			if end > last {
				end = last
			}
			uids, err := client.SearchUIDRange(ctx, uint32(start), uint32(end))
			if err != nil {
				log.Warnf("UID search %d:%d failed: %v", start, end, err)
				tracing.TraceErr(span, err)
				continue
			}
			for _, uid := range uids {
				if err := fn(uid); err != nil {
					return err
				}
			}
		}
		return nil
	}

	uids, err := client.SearchAllUIDs(ctx)
	if err != nil {
		log.Warnf("UID search ALL failed: %v", err)
		tracing.TraceErr(span, err)
		return nil
	}
	for _, uid := range uids {
		if err := fn(uid); err != nil {
			return err
		}
	}
	return nil
}
