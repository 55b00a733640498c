package cleaner

import (
	"context"

	"github.com/opentracing/opentracing-go"

	mailsweep_errors "github.com/customeros/mailsweep/errors"
	"github.com/customeros/mailsweep/interfaces"
	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
	"github.com/customeros/mailsweep/internal/tracing"
	"github.com/customeros/mailsweep/services/email_filter"
)

// Engine decides and applies the action for a single message. A nil
// confirmer means non-interactive mode: actions apply without prompting.
type Engine struct {
	log       logger.Logger
	matcher   *email_filter.Matcher
	confirmer interfaces.Confirmer
}

func NewEngine(log logger.Logger, matcher *email_filter.Matcher, confirmer interfaces.Confirmer) *Engine {
	return &Engine{
		log:       log,
		matcher:   matcher,
		confirmer: confirmer,
	}
}

// Decide evaluates the rules in configured order and applies the first
// match's action. It returns ErrRunCanceled when the user cancels at the
// prompt; every other failure is absorbed into OutcomeErrored so the sweep
// continues with the next message. Nothing is retried.
func (e *Engine) Decide(ctx context.Context, client interfaces.MailboxClient, uid uint32, fields models.MessageFields, rules []models.Rule, trashFolder string) (enum.Outcome, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Engine.Decide")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("uid", uid)

	action, matched := e.chooseAction(rules, fields)
	if !matched {
		return enum.OutcomeSkipped, nil
	}
	span.SetTag("action", action.String())

	if action == enum.ActionTrash && trashFolder == "" {
		e.log.Infof("skipping %q: no trash folder resolved", fields.Subject)
		return enum.OutcomeSkipped, nil
	}

	if e.confirmer != nil {
		decision, err := e.confirmer.Confirm(ctx, fields.Subject, previewBody(fields), action)
		if err != nil {
			tracing.TraceErr(span, err)
			return enum.OutcomeErrored, nil
		}
		switch decision {
		case enum.DecisionNo:
			return enum.OutcomeSkipped, nil
		case enum.DecisionCancel:
			return enum.OutcomeSkipped, mailsweep_errors.ErrRunCanceled
		}
	}

	if action == enum.ActionTrash {
		return e.applyTrash(ctx, client, uid, trashFolder), nil
	}
	return e.applyDelete(ctx, client, uid), nil
}

// chooseAction returns the action of the first matching rule. Rule order is
// the configured order; first match wins.
func (e *Engine) chooseAction(rules []models.Rule, fields models.MessageFields) (enum.Action, bool) {
	for _, rule := range rules {
		if e.matcher.Matches(rule, fields) {
			return rule.Action, true
		}
	}
	return enum.ActionDelete, false
}

func (e *Engine) applyDelete(ctx context.Context, client interfaces.MailboxClient, uid uint32) enum.Outcome {
	if err := client.MarkDeleted(ctx, uid); err != nil {
		e.log.Errorf("flagging UID %d deleted failed: %v", uid, err)
		return enum.OutcomeErrored
	}
	return enum.OutcomeDeleted
}

// applyTrash copies first and only flags the original on success, so a copy
// failure leaves the message untouched. When the flag fails after a
// successful copy the message exists twice; that state is surfaced, not
// retried.
func (e *Engine) applyTrash(ctx context.Context, client interfaces.MailboxClient, uid uint32, trashFolder string) enum.Outcome {
	if err := client.Copy(ctx, uid, trashFolder); err != nil {
		e.log.Warnf("copying UID %d to %q failed, original left untouched: %v", uid, trashFolder, err)
		return enum.OutcomeErrored
	}
	if err := client.MarkDeleted(ctx, uid); err != nil {
		e.log.Errorf("UID %d copied to %q but flagging failed, message is now duplicated: %v", uid, trashFolder, err)
		return enum.OutcomeErrored
	}
	return enum.OutcomeTrashed
}

func previewBody(fields models.MessageFields) string {
	if fields.BodyText != "" {
		return fields.BodyText
	}
	if fields.HasHTML {
		return fields.BodyHTML
	}
	return ""
}
