package email_processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertHTMLToText_PlainParagraph(t *testing.T) {
	// Act
	text, err := ConvertHTMLToText("<html><body><p>Hello there</p></body></html>")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)
}

func TestConvertHTMLToText_LinkKeepsTextAndURL(t *testing.T) {
	// Arrange
	src := `<p>Visit <a href="https://example.org/offers">our offers page</a> today</p>`

	// Act
	text, err := ConvertHTMLToText(src)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, text, "our offers page")
	assert.Contains(t, text, "https://example.org/offers")
}

func TestConvertHTMLToText_LinkTextEqualsURL(t *testing.T) {
	// Arrange
	src := `<a href="https://example.org/x">https://example.org/x</a>`

	// Act
	text, err := ConvertHTMLToText(src)

	// Assert: the URL appears once, not doubled
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/x", text)
}

func TestConvertHTMLToText_ImageOnlyLink(t *testing.T) {
	// Arrange
	src := `<a href="https://example.org/track"><img src="pixel.png"/></a>`

	// Act
	text, err := ConvertHTMLToText(src)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/track", text)
}

func TestConvertHTMLToText_TrimsWhitespace(t *testing.T) {
	// Act
	text, err := ConvertHTMLToText("<body>\n\n  <p>content</p>\n\n</body>")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "content", text)
}
