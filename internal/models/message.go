package models

// MessageFields is the per-message view the rule matcher runs against:
// decoded headers plus the aggregated non-attachment body content.
// BodyHTML holds the HTML parts already converted to readable text; HasHTML
// distinguishes "no HTML part" from an HTML part that converted to nothing.
type MessageFields struct {
	Subject  string
	From     string
	To       string
	BodyText string
	BodyHTML string
	HasHTML  bool
}
