package form

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxSessions сколько сессий с формами держится в памяти одновременно
const DefaultMaxSessions = 1024

// Sessions контроллер формы на каждую сессию браузера. Число сессий
// ограничено: давно не использованная вытесняется, её форма считается закрытой.
type Sessions struct {
	mu          sync.Mutex
	controllers *lru.Cache[string, *Controller]
	factory     func() *Controller
}

func NewSessions(size int, factory func() *Controller) (*Sessions, error) {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	cache, err := lru.New[string, *Controller](size)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &Sessions{controllers: cache, factory: factory}, nil
}

// NewID идентификатор новой сессии
func NewID() string {
	return uuid.NewString()
}

// Get контроллер сессии id, создаётся при первом обращении
func (s *Sessions) Get(id string) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.controllers.Get(id); ok {
		return c
	}
	c := s.factory()
	s.controllers.Add(id, c)
	return c
}

// Len число сессий в памяти
func (s *Sessions) Len() int {
	return s.controllers.Len()
}

// Valid проверяет формат идентификатора сессии
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
