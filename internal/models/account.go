package models

import "github.com/customeros/mailsweep/internal/enum"

// ServerConfig holds the connection parameters for one IMAP server.
// SSL selects an implicit TLS connection; TLS upgrades a plain connection
// with STARTTLS after dialing.
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	TLS      bool   `mapstructure:"tls"`
	SSL      bool   `mapstructure:"ssl"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Rule is one pattern-based cleanup rule. Each non-empty pattern set must be
// fully satisfied by the corresponding message field for the rule to match;
// an empty set imposes no constraint. Rules with every set empty match all
// messages.
type Rule struct {
	Subject []string
	Body    []string
	From    []string
	To      []string
	Action  enum.Action
}

// Cleanup pairs one or more target folders with an ordered rule list.
// Rule order matters: the first matching rule decides the action.
type Cleanup struct {
	Mailboxes []string
	Rules     []Rule
}

// Account is one configured mail account. Immutable once loaded.
type Account struct {
	Name     string
	Server   ServerConfig
	Cleanups []Cleanup
}
