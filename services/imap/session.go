package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/client"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	mailsweep_errors "github.com/customeros/mailsweep/errors"
	"github.com/customeros/mailsweep/interfaces"
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
	"github.com/customeros/mailsweep/internal/tracing"
)

const (
	dialTimeout    = 30 * time.Second
	commandTimeout = 30 * time.Second
	fetchTimeout   = 60 * time.Second
	logoutTimeout  = 5 * time.Second
)

// Session owns one IMAP connection for the duration of one account sweep.
// The folder listing is loaded once at connect time and cached; the session
// is not reused after Close.
type Session struct {
	server   models.ServerConfig
	log      logger.Logger
	client   *client.Client
	folders  []models.Folder
	selected string
}

var _ interfaces.MailboxClient = (*Session)(nil)

func NewSession(server models.ServerConfig, log logger.Logger) *Session {
	return &Session{
		server: server,
		log:    log,
	}
}

// Connect dials the server, authenticates and loads the folder listing.
// A connection without a retrievable folder listing is useless for a sweep,
// so that case fails with ErrMailboxesUnavailable.
func (s *Session) Connect(ctx context.Context) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Session.Connect")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("server", s.server.Host)
	span.SetTag("port", s.server.Port)

	serverAddr := fmt.Sprintf("%s:%d", s.server.Host, s.server.Port)

	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: dialTimeout,
	}

	var c *client.Client
	var err error

	if s.server.SSL {
		tlsConfig := &tls.Config{
			ServerName: s.server.Host,
		}
		c, err = client.DialWithDialerTLS(dialer, serverAddr, tlsConfig)
	} else {
		c, err = client.DialWithDialer(dialer, serverAddr)
		if err == nil && s.server.TLS {
			err = c.StartTLS(&tls.Config{ServerName: s.server.Host})
		}
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "failed to connect to %s", serverAddr)
	}

	c.Timeout = commandTimeout
	if err = c.Login(s.server.Username, s.server.Password); err != nil {
		_ = c.Logout()
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "failed to login as %s", s.server.Username)
	}
	c.Timeout = 0

	s.client = c
	s.log.Debugf("connected to %s as %s", serverAddr, s.server.Username)

	s.folders = s.loadFolders(ctx)
	if len(s.folders) == 0 {
		_ = c.Logout()
		s.client = nil
		tracing.TraceErr(span, mailsweep_errors.ErrMailboxesUnavailable)
		return mailsweep_errors.ErrMailboxesUnavailable
	}
	span.SetTag("folders.count", len(s.folders))

	return nil
}

// Close logs out, bounded by logoutTimeout so a dead connection cannot hang
// the sweep.
func (s *Session) Close() error {
	if s.client == nil {
		return nil
	}
	c := s.client
	s.client = nil

	c.Timeout = logoutTimeout

	done := make(chan error, 1)
	go func() {
		done <- c.Logout()
		close(done)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.log.Warnf("error during logout: %v", err)
			return err
		}
	case <-time.After(logoutTimeout):
		s.log.Warnf("logout timed out")
	}
	return nil
}
