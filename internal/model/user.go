package model

import "time"

// User represents an application user record as stored in the
// `users` table.  The json tags are omitted here because these structs
// are used internally by the repository and service layers; handlers
// define separate response types so the password hash never leaves
// the server.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name shown in the UI.
//  IsActive     – false once the account has been deactivated.
//  CreatedAt    – timestamp of registration.
//  LastAccess   – timestamp of the last successful login (nil before the first).
type User struct {
    ID           uint64     // users.id
    Username     string     // users.username
    Email        string     // users.email
    PasswordHash string     // users.password_hash
    FullName     string     // users.full_name
    IsActive     bool       // users.is_active
    CreatedAt    time.Time  // users.created_at
    LastAccess   *time.Time // users.last_access (nullable)
}
