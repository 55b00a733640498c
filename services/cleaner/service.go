package cleaner

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	mailsweep_errors "github.com/customeros/mailsweep/errors"
	"github.com/customeros/mailsweep/interfaces"
	"github.com/customeros/mailsweep/internal/credential"
	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
	"github.com/customeros/mailsweep/internal/tracing"
	"github.com/customeros/mailsweep/internal/utils"
	"github.com/customeros/mailsweep/services/email_filter"
	"github.com/customeros/mailsweep/services/email_processor"
	"github.com/customeros/mailsweep/services/imap"
)

type Options struct {
	// Interactive gates every destructive action behind a console prompt.
	Interactive bool
	// SkipDays leaves messages younger than this many days untouched.
	// Zero disables the age filter.
	SkipDays int
	// ChunkSize bounds each UID range search during folder enumeration.
	ChunkSize int
	// PreviewChars bounds the body preview shown in the confirmation prompt.
	PreviewChars int
	// SubjectWidth bounds the subject column in per-message result lines.
	SubjectWidth int
}

type cleanupService struct {
	log      logger.Logger
	opts     Options
	engine   *Engine
	reporter *Reporter

	dial func(server models.ServerConfig) interfaces.MailboxClient
	now  func() time.Time
}

func NewCleanupService(log logger.Logger, opts Options, out io.Writer) interfaces.CleanupService {
	var confirmer interfaces.Confirmer
	if opts.Interactive {
		confirmer = NewConsoleConfirmer(out, opts.PreviewChars)
	}

	return &cleanupService{
		log:      log,
		opts:     opts,
		engine:   NewEngine(log, email_filter.NewMatcher(log), confirmer),
		reporter: NewReporter(out, opts.SubjectWidth),
		dial: func(server models.ServerConfig) interfaces.MailboxClient {
			return imap.NewSession(server, log)
		},
		now: time.Now,
	}
}

// Run sweeps every account in order. A connection or mailbox-listing failure
// skips that account and moves on; a cancellation from the interactive prompt
// stops the whole run cleanly; anything else is fatal.
func (s *cleanupService) Run(ctx context.Context, accounts []models.Account) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CleanupService.Run")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagComponentService(span)

	runID := uuid.New().String()
	span.SetTag(tracing.SpanTagRunId, runID)
	s.log.Infof("starting sweep %s over %d account(s)", runID, len(accounts))

	for _, account := range accounts {
		if err := s.processAccount(ctx, account); err != nil {
			if errors.Is(err, mailsweep_errors.ErrRunCanceled) {
				s.log.Infof("sweep %s canceled", runID)
				return err
			}
			tracing.TraceErr(span, err)
			return errors.Wrapf(err, "sweeping account %s", account.Name)
		}
	}

	s.log.Infof("sweep %s finished", runID)
	return nil
}

func (s *cleanupService) processAccount(ctx context.Context, account models.Account) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CleanupService.processAccount")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagAccount(span, account.Name)

	server := account.Server
	server.Password = credential.ResolvePassword(account.Name, server.Username, server.Password, s.log)

	client := s.dial(server)
	if err := client.Connect(ctx); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("account %s unavailable, skipping: %v", account.Name, err)
		return nil
	}
	defer client.Close()

	trashFolder, found := imap.ResolveTrash(client.Folders())
	if found {
		s.log.Debugf("account %s: trash folder is %q", account.Name, trashFolder)
	} else {
		s.log.Infof("account %s: no trash folder found, trash rules will be skipped", account.Name)
	}

	for _, cleanup := range account.Cleanups {
		s.log.Debugf("account %s: sweeping %s with %d rule(s)", account.Name, utils.SliceToString(cleanup.Mailboxes), len(cleanup.Rules))
		for _, folder := range cleanup.Mailboxes {
			if err := s.processFolder(ctx, client, account.Name, folder, cleanup.Rules, trashFolder); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *cleanupService) processFolder(ctx context.Context, client interfaces.MailboxClient, account, folder string, rules []models.Rule, trashFolder string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CleanupService.processFolder")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagAccount(span, account)
	tracing.TagFolder(span, folder)

	if !client.HasFolder(folder) {
		s.log.Warnf("account %s: folder %q not found, skipping", account, folder)
		return nil
	}
	if err := client.Select(ctx, folder); err != nil {
		tracing.TraceErr(span, err)
		s.log.Warnf("account %s: selecting %q failed, skipping: %v", account, folder, err)
		return nil
	}

	s.reporter.Folder(account, folder)

	var cutoff time.Time
	if s.opts.SkipDays > 0 {
		cutoff = s.now().AddDate(0, 0, -s.opts.SkipDays)
	}

	summary := models.FolderSummary{Account: account, Folder: folder}

	err := imap.ForEachUID(ctx, client, s.opts.ChunkSize, s.log, func(uid uint32) error {
		summary.Checked++

		if !cutoff.IsZero() && s.tooRecent(ctx, client, uid, cutoff) {
			return nil
		}

		// a message that cannot be fetched is skipped, not errored: the error
		// tally is reserved for failed actions
		raw, err := client.FetchMessage(ctx, uid)
		if err != nil {
			s.log.Warnf("fetching UID %d failed: %v", uid, err)
			summary.Add(enum.OutcomeSkipped)
			s.reporter.Result(enum.OutcomeSkipped, uid, "")
			return nil
		}

		fields := email_processor.ExtractFields(raw, s.log)
		outcome, err := s.engine.Decide(ctx, client, uid, fields, rules, trashFolder)
		if err != nil {
			return err
		}
		summary.Add(outcome)
		s.reporter.Result(outcome, uid, fields.Subject)
		return nil
	})
	if err != nil {
		return err
	}

	if summary.Checked == 0 {
		s.reporter.NoMessages()
	}

	if summary.Mutated() {
		if expErr := client.Expunge(ctx); expErr != nil {
			tracing.TraceErr(span, expErr)
			s.log.Errorf("account %s: expunging %q failed: %v", account, folder, expErr)
		}
	}

	s.reporter.Summary(summary)
	tracing.LogObjectAsJson(span, "summary", summary)
	return nil
}

// tooRecent reports whether the message's internal date is inside the
// protected window. A missing or unreadable date never protects a message;
// it is scanned like any other.
func (s *cleanupService) tooRecent(ctx context.Context, client interfaces.MailboxClient, uid uint32, cutoff time.Time) bool {
	date, err := client.FetchDate(ctx, uid)
	if err != nil {
		s.log.Debugf("fetching date for UID %d failed: %v", uid, err)
		return false
	}
	if date.IsZero() {
		return false
	}
	return date.After(cutoff)
}
