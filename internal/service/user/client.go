package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const defaultTimeout = 3 * time.Second

// Client — HTTP-клиент реестра аккаунтов. Создаётся один раз на процесс
// и разделяется всеми обработчиками; конфигурация после старта не меняется.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Entry
}

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задаёт таймаут исходящих запросов.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithLogger задаёт logger клиента.
func WithLogger(logger *log.Entry) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient создаёт клиента реестра аккаунтов.
func NewClient(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  log.WithField("component", "user-client"),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// GetUser возвращает пользователя по идентификатору. Семантическое
// отсутствие (HTTP 404) отличимо от транспортного сбоя: первое — это
// domain.ErrUserNotFound, второе — обёрнутая транспортная ошибка.
func (c *Client) GetUser(ctx context.Context, id int64) (domain.User, error) {
	endpoint := c.baseURL + "/users/" + url.PathEscape(strconv.FormatInt(id, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.User{}, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("call user directory: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.User{}, domain.ErrUserNotFound
	default:
		c.logger.WithField("status", resp.StatusCode).Warn("user directory returned unexpected status")
		return domain.User{}, fmt.Errorf("user directory returned status %d", resp.StatusCode)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.User{}, fmt.Errorf("decode user response: %w", err)
	}

	return user, nil
}

var _ domain.UserDirectory = (*Client)(nil)
