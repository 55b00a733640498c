package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/customeros/mailsweep/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		LogLevel: "error",
	})
	appLogger.InitLogger()
	return appLogger
}

// fakeRing is an in-memory keyring backend.
type fakeRing struct {
	items map[string]keyring.Item
}

func (f *fakeRing) Get(key string) (keyring.Item, error) {
	item, ok := f.items[key]
	if !ok {
		return keyring.Item{}, keyring.ErrKeyNotFound
	}
	return item, nil
}

func (f *fakeRing) GetMetadata(key string) (keyring.Metadata, error) {
	return keyring.Metadata{}, keyring.ErrKeyNotFound
}

func (f *fakeRing) Set(item keyring.Item) error { return nil }
func (f *fakeRing) Remove(key string) error     { return nil }

func (f *fakeRing) Keys() ([]string, error) {
	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	return keys, nil
}

func swapOpener(t *testing.T, opener func(keyring.Config) (keyring.Keyring, error)) {
	t.Helper()
	orig := openKeyring
	openKeyring = opener
	t.Cleanup(func() { openKeyring = orig })
}

func TestResolvePassword_ConfiguredPasswordWins(t *testing.T) {
	// Arrange: any keyring access would fail the test
	swapOpener(t, func(cfg keyring.Config) (keyring.Keyring, error) {
		t.Fatal("keyring must not be consulted when a password is configured")
		return nil, nil
	})

	// Act
	password := ResolvePassword("personal", "me", "from-config", getLogger())

	// Assert
	assert.Equal(t, "from-config", password)
}

func TestResolvePassword_KeyringFallback(t *testing.T) {
	// Arrange
	var openedService string
	swapOpener(t, func(cfg keyring.Config) (keyring.Keyring, error) {
		openedService = cfg.ServiceName
		return &fakeRing{items: map[string]keyring.Item{
			"personal/me": {Key: "personal/me", Data: []byte("from-keyring")},
		}}, nil
	})

	// Act
	password := ResolvePassword("personal", "me", "", getLogger())

	// Assert
	assert.Equal(t, "from-keyring", password)
	assert.Equal(t, "mailsweep", openedService)
}

func TestResolvePassword_MissingEntryYieldsEmpty(t *testing.T) {
	// Arrange
	swapOpener(t, func(cfg keyring.Config) (keyring.Keyring, error) {
		return &fakeRing{}, nil
	})

	// Act & Assert
	assert.Equal(t, "", ResolvePassword("personal", "me", "", getLogger()))
}

func TestResolvePassword_UnavailableKeyringYieldsEmpty(t *testing.T) {
	// Arrange
	swapOpener(t, func(cfg keyring.Config) (keyring.Keyring, error) {
		return nil, errors.New("no backend available")
	})

	// Act & Assert
	assert.Equal(t, "", ResolvePassword("personal", "me", "", getLogger()))
}
