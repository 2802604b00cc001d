package models

import "time"

// SIG is a special-interest group, the community sub-team that owns meetings.
type SIG struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Community   string    `bson:"community" json:"community"`
	MailingList string    `bson:"mailing_list,omitempty" json:"mailing_list,omitempty"`
	Maintainers []string  `bson:"maintainers" json:"maintainers"` // user ids
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
