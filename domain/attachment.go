package domain

// Attachment is one inbound file description as received on the wire.
// The payload is a data-URI-style string ("<prefix>,<base64 content>").
// Attachments are ephemeral: they only live long enough to be normalized
// into a Turn and are never retained afterwards.
type Attachment struct {
	Name string
	Mime string
	Data string
}
