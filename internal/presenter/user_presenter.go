// Package presenter owns the wire representation. Responses use camelCase
// keys; requests are accepted in either camelCase or snake_case, with the
// snake forms rewritten through an explicit alias table before decoding.
package presenter

import (
	"encoding/json"
	"time"

	"accounts-api/internal/models"
)

// aliasTable maps the snake_case request keys onto the canonical camelCase
// keys. Applied uniformly to every request body at the boundary.
var aliasTable = map[string]string{
	"first_name":    "firstName",
	"last_name":     "lastName",
	"mobile_phone":  "mobilePhone",
	"access_token":  "accessToken",
	"refresh_token": "refreshToken",
	"token_type":    "tokenType",
	"expires_in":    "expiresIn",
	"created_at":    "createdAt",
	"updated_at":    "updatedAt",
}

func normalizeAliases(data []byte) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key, value := range raw {
		camel, ok := aliasTable[key]
		if !ok {
			continue
		}
		if _, taken := raw[camel]; !taken {
			raw[camel] = value
		}
		delete(raw, key)
	}
	return json.Marshal(raw)
}

// UserResponse is the external shape of a user record.
type UserResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	MobilePhone string    `json:"mobilePhone"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewUserResponse maps a store record onto the wire shape. The password hash
// never leaves the service.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		MobilePhone: u.MobilePhone,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewUserListResponse maps a page of records.
func NewUserListResponse(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// UserRequest is the create payload. Password is optional; accounts created
// without one cannot log in until a password is set.
type UserRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	MobilePhone string `json:"mobilePhone"`
	Verified    bool   `json:"verified"`
	Password    string `json:"password"`
}

func (r *UserRequest) UnmarshalJSON(data []byte) error {
	normalized, err := normalizeAliases(data)
	if err != nil {
		return err
	}
	type plain UserRequest
	return json.Unmarshal(normalized, (*plain)(r))
}

// User builds the store record from the request. Id and timestamps are
// assigned by the store; the password is hashed by the service.
func (r *UserRequest) User() *models.User {
	return &models.User{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		MobilePhone: r.MobilePhone,
		Verified:    r.Verified,
	}
}

// UserUpdateRequest is the partial update payload. Absent fields stay nil and
// never overwrite stored values.
type UserUpdateRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	MobilePhone *string `json:"mobilePhone"`
	Verified    *bool   `json:"verified"`
}

func (r *UserUpdateRequest) UnmarshalJSON(data []byte) error {
	normalized, err := normalizeAliases(data)
	if err != nil {
		return err
	}
	type plain UserUpdateRequest
	return json.Unmarshal(normalized, (*plain)(r))
}

// Patch converts the request into a store-level partial update.
func (r *UserUpdateRequest) Patch() models.UserPatch {
	return models.UserPatch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		MobilePhone: r.MobilePhone,
		Verified:    r.Verified,
	}
}

// PasswordLoginRequest carries the login form; username doubles as email.
type PasswordLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest carries the refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshRequest) UnmarshalJSON(data []byte) error {
	normalized, err := normalizeAliases(data)
	if err != nil {
		return err
	}
	type plain RefreshRequest
	return json.Unmarshal(normalized, (*plain)(r))
}

// AuthResponse is the token pair issued on login and refresh.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// NewAuthResponse maps issued tokens onto the wire shape.
func NewAuthResponse(t *models.AuthTokens) AuthResponse {
	return AuthResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresIn:    t.ExpiresIn,
	}
}
