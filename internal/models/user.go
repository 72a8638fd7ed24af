package models

import "time"

// User is the canonical account record as stored in MongoDB. The document id
// is an application-assigned UUID string, not an ObjectID, so ids survive
// export/import across stores.
type User struct {
	ID           string    `bson:"_id"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	Email        string    `bson:"email"`
	MobilePhone  string    `bson:"mobile_phone"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	Verified     bool      `bson:"verified"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// UserPatch carries a partial update. Nil fields are left untouched by the
// store; only supplied fields are written.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	MobilePhone  *string
	PasswordHash *string
	Verified     *bool
}

// IsEmpty reports whether the patch would write nothing.
func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.MobilePhone == nil && p.PasswordHash == nil && p.Verified == nil
}

// AuthTokens is the credential pair issued on login and refresh.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}
