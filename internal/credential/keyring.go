package credential

import (
	"fmt"

	"github.com/99designs/keyring"

	"github.com/customeros/mailsweep/internal/logger"
)

const keyringService = "mailsweep"

// openKeyring is swapped out in tests.
var openKeyring = keyring.Open

// ResolvePassword returns the password for an account. A password set in the
// account config wins and the keyring is not consulted; otherwise the OS
// keyring is opened under the "mailsweep" service and queried with key
// "<account>/<username>". Returns "" when neither source has one.
func ResolvePassword(accountName, username, configured string, log logger.Logger) string {
	if configured != "" {
		return configured
	}

	ring, err := openKeyring(keyring.Config{
		ServiceName: keyringService,
	})
	if err != nil {
		log.Warnf("opening keyring failed: %v", err)
		return ""
	}

	key := fmt.Sprintf("%s/%s", accountName, username)
	item, err := ring.Get(key)
	if err != nil {
		log.Warnf("no keyring entry for %s: %v", key, err)
		return ""
	}
	return string(item.Data)
}
