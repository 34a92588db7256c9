package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kirovest/sales-app/auth"
	"github.com/kirovest/sales-app/config"
	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

// APIClient talks to the kirovest REST backend. Every response comes wrapped
// in the {success, message, data} envelope; transport failures map to
// NetworkError and unparseable bodies to ProtocolError, so callers only ever
// see the error taxonomy.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *auth.Session
}

func NewAPIClient(cfg *config.Config, session *auth.Session) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Session: session,
	}
}

func (c *APIClient) get(ctx context.Context, path string, authed bool) (*models.Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, authed)
}

func (c *APIClient) post(ctx context.Context, path string, body interface{}, authed bool) (*models.Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body, authed)
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, authed bool) (*models.Envelope, error) {
	// The token precondition is checked before any network I/O.
	var token string
	if authed {
		var err error
		token, err = c.Session.Token()
		if err != nil {
			return nil, err
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &utils.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &utils.NetworkError{Op: method + " " + path, Err: err}
	}

	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, utils.NewProtocolError(err)
	}
	return &env, nil
}

// businessError turns a failure envelope into a BusinessError carrying the
// server message plus any flattened per-field details.
func businessError(env *models.Envelope) error {
	message := env.Message
	if message == "" {
		message = "حدث خطأ غير متوقع"
	}
	return &utils.BusinessError{
		Message: message,
		Details: env.FlattenDetails(),
	}
}
