package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		LogLevel: "error",
	})
	appLogger.InitLogger()
	return appLogger
}

func writeAccountsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAccounts_FullShape(t *testing.T) {
	// Arrange
	path := writeAccountsFile(t, `{
		"personal": {
			"server": {
				"host": "imap.example.org",
				"username": "me",
				"password": "secret"
			},
			"cleanup": [
				{
					"mailbox": ["INBOX", "Junk"],
					"rules": [
						{"subject": ["newsletter", "digest"], "action": "trash"},
						{"from": "spam@", "action": "delete"}
					]
				}
			]
		}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	account := accounts[0]
	assert.Equal(t, "personal", account.Name)
	assert.Equal(t, "imap.example.org", account.Server.Host)
	assert.Equal(t, 993, account.Server.Port)
	assert.True(t, account.Server.SSL)

	require.Len(t, account.Cleanups, 1)
	assert.Equal(t, []string{"INBOX", "Junk"}, account.Cleanups[0].Mailboxes)

	rules := account.Cleanups[0].Rules
	require.Len(t, rules, 2)
	assert.Equal(t, []string{"newsletter", "digest"}, rules[0].Subject)
	assert.Equal(t, enum.ActionTrash, rules[0].Action)
	assert.Equal(t, []string{"spam@"}, rules[1].From)
	assert.Equal(t, enum.ActionDelete, rules[1].Action)
}

func TestLoadAccounts_SingleStringMailbox(t *testing.T) {
	// Arrange: scalar where a list is expected
	path := writeAccountsFile(t, `{
		"a": {
			"server": {"host": "h"},
			"cleanup": [{"mailbox": "INBOX", "rules": [{"subject": "x"}]}]
		}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, []string{"INBOX"}, accounts[0].Cleanups[0].Mailboxes)
}

func TestLoadAccounts_DuplicateMailboxesDeduped(t *testing.T) {
	// Arrange
	path := writeAccountsFile(t, `{
		"a": {
			"server": {"host": "h"},
			"cleanup": [{"mailbox": ["INBOX", "Junk", "INBOX"], "rules": []}]
		}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"INBOX", "Junk"}, accounts[0].Cleanups[0].Mailboxes)
}

func TestLoadAccounts_UnknownActionFallsBackToDelete(t *testing.T) {
	// Arrange
	path := writeAccountsFile(t, `{
		"a": {
			"server": {"host": "h"},
			"cleanup": [{"mailbox": "INBOX", "rules": [{"subject": "x", "action": "archive"}]}]
		}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, enum.ActionDelete, accounts[0].Cleanups[0].Rules[0].Action)
}

func TestLoadAccounts_ExplicitSSLOff(t *testing.T) {
	// Arrange
	path := writeAccountsFile(t, `{
		"a": {
			"server": {"host": "h", "port": 143, "ssl": false, "tls": true},
			"cleanup": []
		}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	assert.False(t, accounts[0].Server.SSL)
	assert.True(t, accounts[0].Server.TLS)
	assert.Equal(t, 143, accounts[0].Server.Port)
}

func TestLoadAccounts_HostlessEntrySkipped(t *testing.T) {
	// Arrange
	path := writeAccountsFile(t, `{
		"broken": {"server": {"username": "me"}},
		"working": {"server": {"host": "imap.example.org"}}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "working", accounts[0].Name)
}

func TestLoadAccounts_PreservesNameCase(t *testing.T) {
	// Arrange: the account name keys console output and the keyring lookup,
	// so the file's spelling must survive loading
	path := writeAccountsFile(t, `{
		"Personal-Mail": {"server": {"host": "imap.example.org"}}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Personal-Mail", accounts[0].Name)
}

func TestLoadAccounts_SortedByName(t *testing.T) {
	// Arrange
	path := writeAccountsFile(t, `{
		"zulu": {"server": {"host": "h1"}},
		"alpha": {"server": {"host": "h2"}}
	}`)

	// Act
	accounts, err := LoadAccounts(path, getLogger())

	// Assert
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alpha", accounts[0].Name)
	assert.Equal(t, "zulu", accounts[1].Name)
}

func TestLoadAccounts_MissingFile(t *testing.T) {
	// Act
	_, err := LoadAccounts(filepath.Join(t.TempDir(), "nope.json"), getLogger())

	// Assert
	assert.Error(t, err)
}

func TestLoadAccounts_MalformedJSON(t *testing.T) {
	// Arrange
	path := writeAccountsFile(t, `{not json`)

	// Act
	_, err := LoadAccounts(path, getLogger())

	// Assert
	assert.Error(t, err)
}
