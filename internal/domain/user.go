package domain

import "time"

// User is the subject a credential is issued for. The profile fields are owned
// by the profile service; this service only reads them.
type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	MobileNo  string    `json:"mobile_no" dynamodbav:"mobile_no"`
	FirstName string    `json:"first_name" dynamodbav:"first_name"`
	LastName  string    `json:"last_name" dynamodbav:"last_name"`
	Location  string    `json:"location" dynamodbav:"location"` // ISO 3166-2
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}
