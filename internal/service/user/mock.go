package user

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// MockService — конфигурируемая заглушка UserDirectory для тестов и
// локальной разработки без реестра аккаунтов.
type MockService struct {
	mu sync.Mutex

	Users  map[int64]domain.User
	GetErr error

	GetCalls int
}

// NewMockService возвращает mock с одним известным пользователем.
func NewMockService() *MockService {
	return &MockService{
		Users: map[int64]domain.User{
			1: {ID: 1, Email: "demo@example.com"},
		},
	}
}

// GetUser возвращает заранее настроенного пользователя, считая вызовы.
func (m *MockService) GetUser(_ context.Context, id int64) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.GetErr != nil {
		return domain.User{}, m.GetErr
	}

	user, ok := m.Users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

// Calls возвращает число обращений к GetUser.
func (m *MockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GetCalls
}

var _ domain.UserDirectory = (*MockService)(nil)
