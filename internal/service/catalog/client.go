package catalog

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

// Client — HTTP-клиент каталога товаров и складских остатков.
// Создаётся один раз на процесс и разделяется всеми обработчиками.
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

// NewClient создаёт клиента каталога.
func NewClient(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  log.WithField("component", "catalog-client"),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// GetProduct возвращает товар по идентификатору. HTTP 404 транслируется в
// domain.ErrProductNotFound; остальные сбои — транспортные ошибки.
func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	endpoint := c.productURL(id)

	var product domain.Product
	if err := c.getJSON(ctx, endpoint, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// CheckStock запрашивает у каталога доступность остатков под количество.
// Остатки только проверяются; резервирования на этом пути нет.
func (c *Client) CheckStock(ctx context.Context, productID int64, quantity int32) (domain.StockReport, error) {
	endpoint := c.productURL(productID) + "/stock?quantity=" + strconv.FormatInt(int64(quantity), 10)

	var report domain.StockReport
	if err := c.getJSON(ctx, endpoint, &report); err != nil {
		return domain.StockReport{}, err
	}
	return report, nil
}

func (c *Client) productURL(id int64) string {
	return c.baseURL + "/products/" + url.PathEscape(strconv.FormatInt(id, 10))
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call catalog: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.ErrProductNotFound
	default:
		c.logger.WithField("status", resp.StatusCode).Warn("catalog returned unexpected status")
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}

	return nil
}

var _ domain.Catalog = (*Client)(nil)
