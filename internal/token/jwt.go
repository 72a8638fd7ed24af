package token

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carried by both access and refresh tokens. Fresh marks an access
// token minted directly from a password check, as opposed to one derived from
// a refresh token.
type Claims struct {
	UserID string `json:"user_id"`
	Fresh  bool   `json:"fresh,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies RS256 access/refresh token pairs.
type Manager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager builds a Manager from already-parsed keys. Used directly in
// tests; production goes through NewManagerFromFiles.
func NewManager(priv *rsa.PrivateKey, pub *rsa.PublicKey, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		privateKey: priv,
		publicKey:  pub,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// NewManagerFromFiles loads the PEM key pair from disk.
func NewManagerFromFiles(privPath, pubPath string, accessMinutes, refreshDays int) (*Manager, error) {
	priv, err := loadRSAPrivateKey(privPath)
	if err != nil {
		return nil, err
	}
	pub, err := loadRSAPublicKey(pubPath)
	if err != nil {
		return nil, err
	}
	return NewManager(priv, pub,
		time.Duration(accessMinutes)*time.Minute,
		time.Duration(refreshDays)*24*time.Hour,
	), nil
}

// AccessTTL is the lifetime of issued access tokens.
func (m *Manager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL is the lifetime of issued refresh tokens.
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// GenerateAccessToken issues an access token for the given subject.
func (m *Manager) GenerateAccessToken(userID string, fresh bool) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.accessTTL)
	claims := &Claims{
		UserID: userID,
		Fresh:  fresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{"access"},
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(m.privateKey)
	return signed, exp, err
}

// GenerateRefreshToken issues a refresh token for the given subject. Each
// carries a unique jti so rotated tokens never compare equal.
func (m *Manager) GenerateRefreshToken(userID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.refreshTTL)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(m.privateKey)
	return signed, exp, err
}

func (m *Manager) verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}
		return m.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseAccess verifies an access token and returns its claims.
func (m *Manager) ParseAccess(tokenStr string) (*Claims, error) {
	claims, err := m.verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if !containsAudience(claims.Audience, "access") {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token and returns the subject user id.
func (m *Manager) ParseRefresh(tokenStr string) (string, error) {
	claims, err := m.verify(tokenStr)
	if err != nil {
		return "", err
	}
	if !containsAudience(claims.Audience, "refresh") {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func containsAudience(aud jwt.ClaimStrings, target string) bool {
	for _, a := range aud {
		if a == target {
			return true
		}
	}
	return false
}

func loadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || (block.Type != "PRIVATE KEY" && block.Type != "RSA PRIVATE KEY") {
		return nil, errors.New("invalid PEM private key")
	}
	if block.Type == "RSA PRIVATE KEY" {
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	}
	keyInterface, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	priv, ok := keyInterface.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("not an RSA private key")
	}
	return priv, nil
}

func loadRSAPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || (block.Type != "PUBLIC KEY" && block.Type != "RSA PUBLIC KEY") {
		return nil, errors.New("invalid PEM public key")
	}
	if block.Type == "RSA PUBLIC KEY" {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return rsaPub, nil
}
