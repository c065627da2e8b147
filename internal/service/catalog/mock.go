package catalog

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// MockService — конфигурируемая заглушка Catalog для тестов и локальной
// разработки без внешнего каталога.
type MockService struct {
	mu sync.Mutex

	Products map[int64]domain.Product
	Stock    map[int64]int32

	GetErr   error
	StockErr error

	GetCalls   int
	StockCalls int
}

// NewMockService возвращает mock с одним товаром и большим остатком.
func NewMockService() *MockService {
	return &MockService{
		Products: map[int64]domain.Product{
			5: {ID: 5, Name: "demo product", Price: decimal.RequireFromString("19.99")},
		},
		Stock: map[int64]int32{5: 100},
	}
}

// GetProduct возвращает заранее настроенный товар, считая вызовы.
func (m *MockService) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.GetErr != nil {
		return domain.Product{}, m.GetErr
	}

	product, ok := m.Products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// CheckStock отвечает по сконфигурированным остаткам, считая вызовы.
func (m *MockService) CheckStock(_ context.Context, productID int64, quantity int32) (domain.StockReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StockCalls++
	if m.StockErr != nil {
		return domain.StockReport{}, m.StockErr
	}

	current, ok := m.Stock[productID]
	if !ok {
		return domain.StockReport{Available: false, CurrentStock: 0, Message: "product not found"}, nil
	}
	if current < quantity {
		return domain.StockReport{Available: false, CurrentStock: current, Message: "insufficient stock"}, nil
	}
	return domain.StockReport{Available: true, CurrentStock: current, Message: "stock available"}, nil
}

// Calls возвращает суммарное число обращений к каталогу.
func (m *MockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GetCalls + m.StockCalls
}

var _ domain.Catalog = (*MockService)(nil)
