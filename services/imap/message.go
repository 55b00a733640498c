package imap

import (
	"context"
	"io"
	"time"

	"github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	mailsweep_errors "github.com/customeros/mailsweep/errors"
	"github.com/customeros/mailsweep/internal/tracing"
)

// FetchMessage retrieves the full raw message for a UID using BODY.PEEK[] so
// the fetch does not flag the message as seen.
func (s *Session) FetchMessage(ctx context.Context, uid uint32) ([]byte, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "Session.FetchMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", uid)

	if s.client == nil {
		return nil, mailsweep_errors.ErrNotConnected
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{
		imap.FetchEnvelope,
		imap.FetchUid,
		section.FetchItem(),
	}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)

	s.client.Timeout = fetchTimeout
	go func() {
		done <- s.client.UidFetch(seqSet, items, messages)
	}()

	var raw []byte
	for msg := range messages {
		if msg == nil {
			continue
		}
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		data, err := io.ReadAll(body)
		if err != nil {
			s.log.Warnf("reading body of UID %d failed: %v", uid, err)
			continue
		}
		raw = data
	}

	err := <-done
	s.client.Timeout = 0
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrapf(err, "fetching UID %d", uid)
	}
	if len(raw) == 0 {
		err = errors.Errorf("UID %d returned no body", uid)
		tracing.TraceErr(span, err)
		return nil, err
	}
	return raw, nil
}

// FetchDate retrieves only the envelope to read the message date, for the
// skip-days pre-filter. A zero time with nil error means the server reported
// no usable date.
func (s *Session) FetchDate(ctx context.Context, uid uint32) (time.Time, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "Session.FetchDate")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", uid)

	if s.client == nil {
		return time.Time{}, mailsweep_errors.ErrNotConnected
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchUid}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)

	s.client.Timeout = commandTimeout
	go func() {
		done <- s.client.UidFetch(seqSet, items, messages)
	}()

	var date time.Time
	for msg := range messages {
		if msg != nil && msg.Envelope != nil {
			date = msg.Envelope.Date
		}
	}

	err := <-done
	s.client.Timeout = 0
	if err != nil {
		tracing.TraceErr(span, err)
		return time.Time{}, errors.Wrapf(err, "fetching envelope of UID %d", uid)
	}
	return date, nil
}
