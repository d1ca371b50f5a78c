// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"concept_flash/internal/config"
	"concept_flash/internal/model"

	"github.com/google/uuid"
)

// ConceptAPI はコンセプトの REST 操作です (学習セッション・CLI から利用)
type ConceptAPI interface {
	List(ctx context.Context) ([]model.Concept, error)
	Get(ctx context.Context, id uint) (*model.Concept, error)
	Create(ctx context.Context, in model.ConceptInput) (*model.Concept, error)
	Update(ctx context.Context, id uint, patch model.ConceptPatch) (*model.Concept, error)
	Delete(ctx context.Context, id uint) error
}

// Client はコンセプトAPIの HTTP クライアントです
type Client struct {
	baseURL    string
	table      string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient は内部で使う *http.Client を差し替えます (テスト用)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient は設定からクライアントを作成します
func NewClient(cfg config.ClientConfig, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultClientBaseURL
	}
	table := cfg.Table
	if table == "" {
		table = config.DefaultConceptTable
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultClientTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		table:      table,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "concept_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ConceptAPI = (*Client)(nil)

func (c *Client) collectionURL() string {
	return c.baseURL + "/" + c.table
}

func (c *Client) itemURL(id uint) string {
	return c.collectionURL() + "/" + strconv.FormatUint(uint64(id), 10)
}

// List は全コンセプトを取得します
func (c *Client) List(ctx context.Context) ([]model.Concept, error) {
	var concepts []model.Concept
	if err := c.do(ctx, "list", msgList, http.MethodGet, c.collectionURL(), nil, &concepts); err != nil {
		return nil, err
	}
	if concepts == nil {
		concepts = []model.Concept{}
	}
	return concepts, nil
}

// Get は1件のコンセプトを取得します
func (c *Client) Get(ctx context.Context, id uint) (*model.Concept, error) {
	var concept model.Concept
	if err := c.do(ctx, "get", msgGet, http.MethodGet, c.itemURL(id), nil, &concept); err != nil {
		return nil, err
	}
	return &concept, nil
}

// Create は新しいコンセプトを作成し、サーバーが採番したレコードを返します
func (c *Client) Create(ctx context.Context, in model.ConceptInput) (*model.Concept, error) {
	var concept model.Concept
	if err := c.do(ctx, "create", msgCreate, http.MethodPost, c.collectionURL(), in, &concept); err != nil {
		return nil, err
	}
	return &concept, nil
}

// Update は patch に含まれるフィールドのみ更新します (PUT)
func (c *Client) Update(ctx context.Context, id uint, patch model.ConceptPatch) (*model.Concept, error) {
	var concept model.Concept
	if err := c.do(ctx, "update", msgUpdate, http.MethodPut, c.itemURL(id), patch, &concept); err != nil {
		return nil, err
	}
	return &concept, nil
}

// Delete はコンセプトを削除します
func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, "delete", msgDelete, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, failMsg, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Op: op, Message: failMsg, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &FetchError{Op: op, Message: failMsg, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger := c.logger.With(
		slog.String("op", op),
		slog.String("method", method),
		slog.String("url", url),
		slog.String("req_id", requestID),
	)
	logger.DebugContext(ctx, "Sending concept API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "Concept API request failed", slog.Any("error", err))
		return &FetchError{Op: op, Message: failMsg, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Message: failMsg, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{Op: op, Status: resp.StatusCode, Message: failMsg}
		if detail := errorDetail(respBody); detail != "" {
			fe.Err = errors.New(detail)
		}
		logger.WarnContext(ctx, "Concept API returned error status",
			slog.Int("status", resp.StatusCode),
			slog.String("error", fe.Error()))
		return fe
	}

	logger.DebugContext(ctx, "Concept API request succeeded", slog.Int("status", resp.StatusCode))
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Message: failMsg, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// maxErrorDetail はエラーボディから取り込む最大バイト数
const maxErrorDetail = 200

// errorDetail はエラーレスポンスのボディからメッセージを取り出します
func errorDetail(body []byte) string {
	var apiErr model.APIErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		if apiErr.Error.Code != "" {
			return apiErr.Error.Code + ": " + apiErr.Error.Message
		}
		return apiErr.Error.Message
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorDetail {
		cut := maxErrorDetail
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
