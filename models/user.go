// File: hotelsa/models/user.go
package models

import "time"

// User is the profile document kept next to the auth account.
// ID is the identity provider's uid.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	PushToken string    `bson:"push_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserRegistrationData is the sign-up form.
type UserRegistrationData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
