package mailsweep_errors

import "github.com/pkg/errors"

var (
	// ErrRunCanceled signals a user-initiated cancellation from the
	// interactive prompt. It is not a failure: callers unwind without further
	// side effects and the process exits zero.
	ErrRunCanceled = errors.New("run canceled by user")

	// ErrMailboxesUnavailable means the folder listing for an account could
	// not be retrieved at all. Fatal for that account only.
	ErrMailboxesUnavailable = errors.New("mailbox listing unavailable")

	ErrNotConnected = errors.New("imap session not connected")
)
