package adminservice

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sushihentaime/folio/internal/common"
)

// LoginFailedMessage is shown inline when the secret does not match.
const LoginFailedMessage = "Incorrect password. Please try again."

var (
	ErrInvalidSecret   = errors.New("invalid admin secret")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptySecret     = errors.New("admin secret must not be empty")
)

// NewGate keeps only a bcrypt hash of secret. Sessions expire after ttl without use.
func NewGate(secret string, ttl time.Duration) (*Gate, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	hash, err := bcrypt.GenerateFromPassword(digest(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Gate{
		hash:     hash,
		sessions: common.NewCache(ttl, ttl/2),
	}, nil
}

// digest fits secrets of any length under bcrypt's 72 byte input limit.
func digest(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Login opens a session when secret matches. A mismatch returns ErrInvalidSecret and
// leaves every existing session as it was.
func (g *Gate) Login(secret string) (*Session, error) {
	err := bcrypt.CompareHashAndPassword(g.hash, digest(secret))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return nil, ErrInvalidSecret
		default:
			return nil, err
		}
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	session := &Session{Token: token, CreatedAt: time.Now().UTC()}
	g.sessions.Set(common.CacheKeySession(token), session)

	return session, nil
}

// Session returns the live session for token and restarts its idle timer.
func (g *Gate) Session(token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	key := common.CacheKeySession(token)
	v, ok := g.sessions.Get(key)
	if !ok {
		return nil, ErrSessionNotFound
	}
	g.sessions.Touch(key)

	return v.(*Session), nil
}

func (g *Gate) State(token string) State {
	if _, err := g.Session(token); err != nil {
		return LoggedOut
	}
	return LoggedIn
}

// Logout ends the session. It reports whether the session was still live.
func (g *Gate) Logout(token string) bool {
	key := common.CacheKeySession(token)
	if _, ok := g.sessions.Get(key); !ok {
		return false
	}

	g.sessions.Delete(key)
	return true
}

func newToken() (string, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes), nil
}
