package model

import "time"

// User represents a registered person as stored in the `users` table.
// PasswordHash is never serialized; handlers return the struct directly
// and rely on the json tags to keep the hash out of responses.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FirstName    – given name (3–30 characters).
//  LastName     – family name (3–30 characters).
//  Email        – unique, lower-cased email address.
//  Phone        – ten digit phone number.
//  PasswordHash – bcrypt hashed password.
//  IsAdmin      – whether the account may manage reservations.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    `json:"id"`        // users.id
    FirstName    string    `json:"firstName"` // users.first_name
    LastName     string    `json:"lastName"`  // users.last_name
    Email        string    `json:"email"`     // users.email
    Phone        string    `json:"phone"`     // users.phone
    PasswordHash string    `json:"-"`         // users.password_hash
    IsAdmin      bool      `json:"isAdmin"`   // users.is_admin
    CreatedAt    time.Time `json:"createdAt"` // users.created_at
}
