package ragclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/malonaz/docqa/internal/file"
	"github.com/malonaz/docqa/internal/orchestrator"
	"github.com/malonaz/docqa/internal/session"
)

const uploadFormField = "file"

// Client talks to the document-QA service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New instantiates and returns a client. A zero timeout disables the client-side timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ orchestrator.Service = (*Client)(nil)

// Wire formats.
type (
	registerResponse struct {
		ID       json.RawMessage `json:"id"`
		Username *string         `json:"username"`
	}

	uploadResponse struct {
		Message string `json:"message"`
		Chunks  *int   `json:"chunks"`
	}

	queryResponse struct {
		Answer  *string  `json:"answer"`
		Sources []string `json:"sources"`
	}

	statusResponse struct {
		Message string `json:"message"`
	}

	errorResponse struct {
		Detail any `json:"detail"`
	}
)

// Register creates (or fetches) the user with the given name.
func (c *Client) Register(ctx context.Context, username string) (*session.Identity, error) {
	query := url.Values{"username": {username}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/register", query), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	response := &registerResponse{}
	if err := c.do(httpReq, response); err != nil {
		return nil, errors.Wrap(err, "register")
	}
	id, err := parseID(response.ID)
	if err != nil {
		return nil, errors.Wrap(err, "register")
	}
	if response.Username == nil {
		return nil, errors.New("register: response is missing username")
	}
	return &session.Identity{ID: id, Username: *response.Username}, nil
}

// Upload sends a document to be ingested into the user's knowledge base.
func (c *Client) Upload(ctx context.Context, userID string, document *file.File) (*orchestrator.UploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(uploadFormField, document.Name())
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err := part.Write(document.Content); err != nil {
		return nil, errors.Wrap(err, "write form file")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	query := url.Values{"user_id": {userID}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/upload", query), body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	response := &uploadResponse{}
	if err := c.do(httpReq, response); err != nil {
		return nil, errors.Wrap(err, "upload")
	}
	if response.Chunks == nil {
		return nil, errors.New("upload: response is missing chunks")
	}
	return &orchestrator.UploadResult{Chunks: *response.Chunks}, nil
}

// Query asks a question against the user's knowledge base.
func (c *Client) Query(ctx context.Context, userID, text string) (*orchestrator.QueryResult, error) {
	query := url.Values{"user_id": {userID}, "q": {text}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/query", query), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	response := &queryResponse{}
	if err := c.do(httpReq, response); err != nil {
		return nil, errors.Wrap(err, "query")
	}
	if response.Answer == nil {
		return nil, errors.New("query: response is missing answer")
	}
	return &orchestrator.QueryResult{Answer: *response.Answer, Sources: response.Sources}, nil
}

// Ping checks that the service is up and returns its status message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/", nil), nil)
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}
	response := &statusResponse{}
	if err := c.do(httpReq, response); err != nil {
		return "", errors.Wrap(err, "ping")
	}
	return response.Message, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	if len(query) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + query.Encode()
}

// do executes the request and decodes a JSON body into out.
func (c *Client) do(httpReq *http.Request, out any) error {
	httpReq.Header.Set("Accept", "application/json")
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "execute request")
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		apiErr := &errorResponse{}
		if err := json.Unmarshal(respBody, apiErr); err == nil && apiErr.Detail != nil {
			return errors.Errorf("API error (%d): %v", httpResp.StatusCode, apiErr.Detail)
		}
		return errors.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "unmarshal response")
	}
	return nil
}

// parseID accepts the opaque id as either a JSON number or a JSON string.
func parseID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("response is missing id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errors.Wrapf(err, "parsing id %s", string(raw))
	}
	return n.String(), nil
}
