// Package directory は外部アイデンティティストアへのRESTクライアントを提供する。
// ユーザー検索と保存済み資格情報の取得をCircuit Breaker経由で行う。
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/oyaguma3/radius-idp-gateway/internal/config"
)

// Client はディレクトリAPIクライアントの実装
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
}

// NewClient は新しいディレクトリAPIクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetTimeout(config.DirectoryRequestTimeout)

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.DirectoryAPIURL, "/"),
	}
}

// LookupUser はレルム内のユーザーをユーザー名で検索する。
// 未登録の場合はErrUserNotFoundを返す。
func (c *Client) LookupUser(ctx context.Context, realm, username string) (*User, error) {
	path := fmt.Sprintf("/api/v1/realms/%s/users/%s",
		url.PathEscape(realm), url.PathEscape(username))

	body, err := c.get(ctx, path)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.IsNotFound() {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidResponse)
	}
	return &user, nil
}

// StoredCredentials はユーザーの保存済み資格情報値を種別指定で取得する。
// 同一種別の資格情報が複数登録されている場合（ローテーション中など）は
// すべての値を返す。
func (c *Client) StoredCredentials(ctx context.Context, realm, userID, credType string) ([]string, error) {
	path := fmt.Sprintf("/api/v1/realms/%s/users/%s/credentials?type=%s",
		url.PathEscape(realm), url.PathEscape(userID), url.QueryEscape(credType))

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw credentialsResponseJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}

	values := make([]string, 0, len(raw.Credentials))
	for _, cred := range raw.Credentials {
		if cred.Type == credType && cred.Value != "" {
			values = append(values, cred.Value)
		}
	}
	return values, nil
}

// Probe はレルムのディレクトリ接続を確認する。
func (c *Client) Probe(ctx context.Context, realm string) error {
	path := fmt.Sprintf("/api/v1/realms/%s/health", url.PathEscape(realm))
	_, err := c.get(ctx, path)
	return err
}

// get はCircuit Breaker経由でGETリクエストを実行する。
// 5xx（501除く）はCB失敗としてカウントし、400/404/501はカウントしない。
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	traceID, ok := ctx.Value(traceIDKey{}).(string)
	if !ok || traceID == "" {
		return nil, ErrTraceIDMissing
	}

	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID).
			Get(c.baseURL + path)

		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		if statusCode >= 500 && statusCode != 501 {
			apiErr := c.parseAPIError(statusCode, resp.Body())
			slog.Error("directory api error",
				"event_id", "DIR_API_ERR",
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return nil, apiErr
		}

		if statusCode != 200 {
			apiErr := c.parseAPIError(statusCode, resp.Body())
			slog.Error("directory api error",
				"event_id", "DIR_API_ERR",
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			// CB対象外エラーはnilを返してCBカウントに含めない
			return apiErr, nil
		}

		slog.Debug("directory api success",
			"latency_ms", latencyMs,
		)

		return resp.Body(), nil
	})

	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}

	if apiErr, ok := result.(*APIError); ok {
		return nil, apiErr
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}
	return body, nil
}

// parseAPIError はHTTPエラーレスポンスをAPIErrorに変換する。
func (c *Client) parseAPIError(statusCode int, body []byte) *APIError {
	var details ProblemDetails
	if err := json.Unmarshal(body, &details); err == nil && details.Title != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    details.Title,
			Details:    &details,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

// traceIDKey はコンテキストからTrace IDを取得するためのキー型
type traceIDKey struct{}

// WithTraceID はコンテキストにTrace IDを設定する。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}
