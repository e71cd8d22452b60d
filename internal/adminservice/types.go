package adminservice

import (
	"time"

	"github.com/sushihentaime/folio/internal/common"
)

// State is where a browser session sits in the admin login flow.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// DefaultSessionTTL is how long an idle admin session survives.
const DefaultSessionTTL = 12 * time.Hour

type Session struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Gate checks the shared admin secret and tracks the sessions it has opened. Sessions
// live only in process memory: a restart logs everyone out.
type Gate struct {
	hash     []byte
	sessions *common.Cache
}
