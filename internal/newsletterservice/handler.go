package newsletterservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sushihentaime/folio/internal/common"
)

const (
	MessageSubscribed   = "Successfully subscribed!"
	MessageFailed       = "Subscription failed"
	MessageNetworkError = "Network error. Please try again."
)

var (
	ErrSubscriptionFailed = errors.New("newsletter provider rejected the subscription")
	ErrUnavailable        = errors.New("newsletter provider unreachable")
)

// NewNewsletterService talks to the ConvertKit form at baseURL. mb may be nil, in which
// case no newsletter.subscribed message is published.
func NewNewsletterService(baseURL, apiKey, formID string, mb common.MessageProducer, logger *slog.Logger) *NewsletterService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &NewsletterService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		formID:  formID,
		mb:      mb,
		logger:  logger,
	}
}

// Subscribe adds email to the form. The Result always carries a message fit for display;
// the error tells validation problems, provider rejections and transport failures apart.
// Nothing is retried.
func (s *NewsletterService) Subscribe(ctx context.Context, email, firstName string) (Result, error) {
	email = strings.TrimSpace(email)
	firstName = strings.TrimSpace(firstName)

	v := common.NewValidator()
	validateEmail(v, email)
	validateFirstName(v, firstName)
	if !v.Valid() {
		return Result{Message: MessageFailed}, v.ValidationError()
	}

	body, err := json.Marshal(subscribeRequest{APIKey: s.apiKey, Email: email, FirstName: firstName})
	if err != nil {
		return Result{Message: MessageFailed}, err
	}

	endpoint := fmt.Sprintf("%s/v3/forms/%s/subscribe", s.baseURL, url.PathEscape(s.formID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Message: MessageFailed}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return Result{Message: MessageNetworkError}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return Result{Message: MessageNetworkError}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		message := MessageFailed

		var e errorResponse
		if json.Unmarshal(respBody, &e) == nil && e.Message != "" {
			message = e.Message
		}

		return Result{Message: message}, fmt.Errorf("%w: status %d", ErrSubscriptionFailed, res.StatusCode)
	}

	s.publishSubscribed(ctx, Subscriber{Email: email, FirstName: firstName})

	return Result{Success: true, Message: MessageSubscribed}, nil
}

// publishSubscribed is best effort: the visitor is already subscribed, so a broker outage
// is only logged.
func (s *NewsletterService) publishSubscribed(ctx context.Context, sub Subscriber) {
	if s.mb == nil {
		return
	}

	msg, err := json.Marshal(sub)
	if err != nil {
		s.logger.Error("could not marshal subscriber", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, msg, common.SubscribedKey, common.SiteExchange)
	if err != nil {
		s.logger.Error("could not publish subscriber", slog.String("error", err.Error()))
	}
}
