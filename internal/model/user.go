package model

// User is the persisted account record. The password hash and the pending
// verification/reset secrets never leave the server, hence the json:"-" tags.
type User struct {
	ID                  string  `json:"id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	PasswordHash        string  `json:"-"`
	IsVerified          bool    `json:"is_verified"`
	VerificationCode    *string `json:"-"`
	VerificationExpires *int64  `json:"-"`
	ResetToken          *string `json:"-"`
	ResetExpires        *int64  `json:"-"`
	LastLoginAt         *int64  `json:"last_login_at,omitempty"`
	Ctime               int64   `json:"ctime"`
	Mtime               int64   `json:"mtime"`
}
