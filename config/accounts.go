package config

import (
	"bytes"
	"encoding/json"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
	"github.com/customeros/mailsweep/internal/utils"
)

const defaultImapPort = 993

// PatternList accepts a single string or a list of strings in the accounts
// file and always decodes to a list. Normalizing here keeps the
// string-or-list shape out of the rule matcher entirely.
type PatternList []string

type rawServer struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	TLS      bool   `mapstructure:"tls"`
	SSL      *bool  `mapstructure:"ssl"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type rawRule struct {
	Subject PatternList `mapstructure:"subject"`
	Body    PatternList `mapstructure:"body"`
	From    PatternList `mapstructure:"from"`
	To      PatternList `mapstructure:"to"`
	Action  string      `mapstructure:"action"`
}

type rawCleanup struct {
	Mailbox PatternList `mapstructure:"mailbox"`
	Rules   []rawRule   `mapstructure:"rules"`
}

type rawAccount struct {
	Server  rawServer    `mapstructure:"server"`
	Cleanup []rawCleanup `mapstructure:"cleanup"`
}

// LoadAccounts reads the JSON accounts file: a mapping from account name to
// server credentials and cleanup specs. Entries without a server host are
// skipped with a warning rather than failing the whole load.
func LoadAccounts(path string, log logger.Logger) ([]models.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading accounts config %s", path)
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrapf(err, "parsing accounts config %s", path)
	}

	var raw map[string]rawAccount
	if err := v.Unmarshal(&raw, viper.DecodeHook(stringToPatternListHookFunc())); err != nil {
		return nil, errors.Wrapf(err, "parsing accounts config %s", path)
	}

	// viper folds map keys to lower case; recover the spelling used in the
	// file so account names stay verbatim (the name keys the keyring lookup)
	spelling := accountNameSpelling(data)

	names := make([]string, 0, len(raw))
	for name := range raw {
		if spelled, ok := spelling[name]; ok {
			name = spelled
		}
		names = append(names, name)
	}
	sort.Strings(names)

	accounts := make([]models.Account, 0, len(raw))
	for _, name := range names {
		entry := raw[strings.ToLower(name)]
		if entry.Server.Host == "" {
			log.Warnf("account %s has no server host, skipping", name)
			continue
		}
		accounts = append(accounts, models.Account{
			Name:     name,
			Server:   buildServer(entry.Server),
			Cleanups: buildCleanups(entry.Cleanup),
		})
	}

	return accounts, nil
}

func accountNameSpelling(data []byte) map[string]string {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil
	}
	out := make(map[string]string, len(keyed))
	for name := range keyed {
		out[strings.ToLower(name)] = name
	}
	return out
}

func buildServer(raw rawServer) models.ServerConfig {
	server := models.ServerConfig{
		Host:     raw.Host,
		Port:     raw.Port,
		TLS:      raw.TLS,
		SSL:      true,
		Username: raw.Username,
		Password: raw.Password,
	}
	if raw.SSL != nil {
		server.SSL = *raw.SSL
	}
	if server.Port == 0 {
		server.Port = defaultImapPort
	}
	return server
}

func buildCleanups(raw []rawCleanup) []models.Cleanup {
	cleanups := make([]models.Cleanup, 0, len(raw))
	for _, rc := range raw {
		cleanup := models.Cleanup{
			Mailboxes: dedupeMailboxes(rc.Mailbox),
			Rules:     make([]models.Rule, 0, len(rc.Rules)),
		}
		for _, rr := range rc.Rules {
			cleanup.Rules = append(cleanup.Rules, models.Rule{
				Subject: rr.Subject,
				Body:    rr.Body,
				From:    rr.From,
				To:      rr.To,
				Action:  enum.ParseAction(rr.Action),
			})
		}
		cleanups = append(cleanups, cleanup)
	}
	return cleanups
}

// dedupeMailboxes drops repeated folder names so no folder is swept twice
// within one cleanup.
func dedupeMailboxes(mailboxes []string) []string {
	out := make([]string, 0, len(mailboxes))
	for _, name := range mailboxes {
		if utils.IsStringInSlice(name, out) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func stringToPatternListHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(PatternList(nil)) {
			return data, nil
		}
		if f.Kind() == reflect.String {
			return PatternList{data.(string)}, nil
		}
		return data, nil
	}
}
