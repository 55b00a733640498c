package imap

import (
	"context"

	"github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	mailsweep_errors "github.com/customeros/mailsweep/errors"
	"github.com/customeros/mailsweep/internal/tracing"
)

// Copy copies one message into another folder. The original is untouched;
// moving to trash is copy followed by MarkDeleted and a later expunge.
func (s *Session) Copy(ctx context.Context, uid uint32, folder string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "Session.Copy")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", uid)
	tracing.TagFolder(span, folder)

	if s.client == nil {
		return mailsweep_errors.ErrNotConnected
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	s.client.Timeout = commandTimeout
	err := s.client.UidCopy(seqSet, folder)
	s.client.Timeout = 0

	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "copying UID %d to %s", uid, folder)
	}
	return nil
}

// MarkDeleted sets the \Deleted flag silently; the message stays in place
// until the folder is expunged.
func (s *Session) MarkDeleted(ctx context.Context, uid uint32) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "Session.MarkDeleted")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", uid)

	if s.client == nil {
		return mailsweep_errors.ErrNotConnected
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.DeletedFlag}

	s.client.Timeout = commandTimeout
	err := s.client.UidStore(seqSet, item, flags, nil)
	s.client.Timeout = 0

	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "flagging UID %d deleted", uid)
	}
	return nil
}

func (s *Session) Expunge(ctx context.Context) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "Session.Expunge")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if s.client == nil {
		return mailsweep_errors.ErrNotConnected
	}

	s.client.Timeout = commandTimeout
	err := s.client.Expunge(nil)
	s.client.Timeout = 0

	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "expunging folder")
	}
	return nil
}
