package models

import "time"

// AccountDB represents an account row in the database
type AccountDB struct {
	ID          int64     `json:"id" db:"id"`                     // Surrogate key assigned by the store
	Identifier  string    `json:"identifier" db:"identifier"`     // External login handle, immutable
	DisplayName string    `json:"display_name" db:"display_name"` // Mutable display name
	SecretHash  string    `json:"secret_hash" db:"secret_hash"`   // Stored form of the secret
	Note        *string   `json:"note" db:"note"`                 // Optional free-form note
	Deleted     bool      `json:"deleted" db:"deleted"`           // Soft-delete flag
	CreatedAt   time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
}

// Account is the externally visible part of an account.
// It never carries the secret hash.
type Account struct {
	Identifier  string
	DisplayName string
	Note        *string
}

// ToAccount strips the row down to its public fields.
func (a *AccountDB) ToAccount() *Account {
	return &Account{
		Identifier:  a.Identifier,
		DisplayName: a.DisplayName,
		Note:        a.Note,
	}
}

// AccountUpdate carries the optional fields of a profile update request.
// A nil field was absent from the request.
type AccountUpdate struct {
	DisplayName *string
	Note        *string
	Secret      *string
}
