package newsletterservice

import (
	"log/slog"
	"net/http"

	"github.com/sushihentaime/folio/internal/common"
)

const DefaultBaseURL = "https://api.convertkit.com"

// Result is what the subscribe form shows back to the visitor.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type NewsletterService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	formID  string
	mb      common.MessageProducer
	logger  *slog.Logger
}

// Subscriber is the payload of a newsletter.subscribed message.
type Subscriber struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
}

type subscribeRequest struct {
	APIKey    string `json:"api_key"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
