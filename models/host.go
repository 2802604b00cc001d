package models

// Host is a shared meeting-platform account. Hosts are statically configured
// at process start and never persisted per booking; a host serves exactly one
// concurrent meeting.
type Host struct {
	ID         string `json:"id"`
	Platform   string `json:"platform"`
	Credential string `json:"-"` // opaque reference, never serialized
}
