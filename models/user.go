package models

import "time"

// User is a portal account that can book meetings and collect them.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Community    string    `bson:"community" json:"community"`
	Admin        bool      `bson:"admin" json:"admin"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Actor identifies who is performing a privileged operation.
type Actor struct {
	UserID string
	Admin  bool
}
