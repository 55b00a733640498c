package email_processor

import (
	"bytes"

	"github.com/jhillyerd/enmime"

	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
)

// ExtractFields parses a raw RFC 822 message into the field set the rule
// matcher runs against. It never fails: a message that cannot be parsed at
// all yields empty fields, and a HTML part that cannot be converted degrades
// to its raw markup. Attachments are excluded by enmime's part
// classification; undecodable bytes are replaced rather than dropped.
func ExtractFields(raw []byte, log logger.Logger) models.MessageFields {
	envelope, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		log.Warnf("parsing message failed: %v", err)
		return models.MessageFields{}
	}

	fields := models.MessageFields{
		Subject:  envelope.GetHeader("Subject"),
		From:     envelope.GetHeader("From"),
		To:       envelope.GetHeader("To"),
		BodyText: envelope.Text,
	}

	if envelope.HTML != "" {
		fields.HasHTML = true
		converted, err := ConvertHTMLToText(envelope.HTML)
		if err != nil {
			log.Warnf("html conversion failed: %v", err)
			fields.BodyHTML = envelope.HTML
		} else {
			fields.BodyHTML = converted
		}
	}

	return fields
}
