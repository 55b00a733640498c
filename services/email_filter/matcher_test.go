package email_filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		LogLevel: "error",
	})
	appLogger.InitLogger()
	return appLogger
}

func TestMatcher_SubjectPatterns(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())
	fields := models.MessageFields{Subject: "Weekly Newsletter: Deals Inside"}

	// Act & Assert
	assert.True(t, m.Matches(models.Rule{Subject: []string{"newsletter"}}, fields))
	assert.True(t, m.Matches(models.Rule{Subject: []string{"newsletter", "deals"}}, fields))
	assert.False(t, m.Matches(models.Rule{Subject: []string{"newsletter", "invoice"}}, fields))
}

func TestMatcher_IsSearchNotFullMatch(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())
	fields := models.MessageFields{Subject: "Your order has shipped"}

	// Act & Assert
	assert.True(t, m.Matches(models.Rule{Subject: []string{"order"}}, fields))
	assert.False(t, m.Matches(models.Rule{Subject: []string{"^order$"}}, fields))
}

func TestMatcher_CaseInsensitiveDotAll(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())
	fields := models.MessageFields{
		Subject:  "UNSUBSCRIBE NOW",
		BodyText: "first line\nsecond line",
	}

	// Act & Assert
	assert.True(t, m.Matches(models.Rule{Subject: []string{"unsubscribe"}}, fields))
	assert.True(t, m.Matches(models.Rule{Body: []string{"first.second"}}, fields))
}

func TestMatcher_BodyMatchesEitherVariant(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())
	fields := models.MessageFields{
		BodyText: "plain content here",
		BodyHTML: "html content here",
		HasHTML:  true,
	}

	// Act & Assert
	assert.True(t, m.Matches(models.Rule{Body: []string{"plain"}}, fields))
	assert.True(t, m.Matches(models.Rule{Body: []string{"html"}}, fields))
	assert.False(t, m.Matches(models.Rule{Body: []string{"neither"}}, fields))
}

func TestMatcher_BodySetNotSatisfiedAcrossVariants(t *testing.T) {
	// Arrange: each variant satisfies one pattern but neither satisfies both
	m := NewMatcher(getLogger())
	fields := models.MessageFields{
		BodyText: "alpha only",
		BodyHTML: "beta only",
		HasHTML:  true,
	}

	// Act
	matched := m.Matches(models.Rule{Body: []string{"alpha", "beta"}}, fields)

	// Assert
	assert.False(t, matched)
}

func TestMatcher_HTMLVariantIgnoredWhenAbsent(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())
	fields := models.MessageFields{
		BodyText: "plain content",
		HasHTML:  false,
	}

	// Act & Assert
	assert.False(t, m.Matches(models.Rule{Body: []string{"anything else"}}, fields))
}

func TestMatcher_FromAndTo(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())
	fields := models.MessageFields{
		From: "Deals Bot <deals@shop.example>",
		To:   "me@example.org",
	}

	// Act & Assert
	assert.True(t, m.Matches(models.Rule{From: []string{"@shop\\.example"}}, fields))
	assert.True(t, m.Matches(models.Rule{To: []string{"me@example"}}, fields))
	assert.False(t, m.Matches(models.Rule{
		From: []string{"@shop\\.example"},
		To:   []string{"someone-else@"},
	}, fields))
}

func TestMatcher_EmptyRuleMatchesEverything(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())

	// Act & Assert
	assert.True(t, m.Matches(models.Rule{Action: enum.ActionDelete}, models.MessageFields{}))
	assert.True(t, m.Matches(models.Rule{}, models.MessageFields{Subject: "anything"}))
}

func TestMatcher_InvalidPatternSkipped(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())
	fields := models.MessageFields{Subject: "promo blast"}

	// Act: the broken pattern is dropped, the valid one still applies
	matched := m.Matches(models.Rule{Subject: []string{"[unclosed", "promo"}}, fields)

	// Assert
	assert.True(t, matched)
}

func TestMatcher_OnlyInvalidPatternsMatchEverything(t *testing.T) {
	// Arrange
	m := NewMatcher(getLogger())

	// Act: every pattern dropped leaves an unconstrained set
	matched := m.Matches(models.Rule{Subject: []string{"[unclosed"}}, models.MessageFields{Subject: "whatever"})

	// Assert
	assert.True(t, matched)
}
