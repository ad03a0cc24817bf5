// Package battle — store.go хранит открытые боевые сессии.
// Явный объект-хранилище вместо глобальной таблицы: движок получает его
// при сборке, тесты — свой собственный экземпляр.
package battle

import "sync"

// SessionStore — потокобезопасная таблица боевых сессий по battle id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore создаёт пустое хранилище сессий.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Put кладёт сессию в таблицу.
func (s *SessionStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get возвращает сессию по id.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Remove удаляет сессию. Удаление отсутствующей — не ошибка:
// на этом держится идемпотентность бегства.
func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count возвращает число открытых боёв (для почасового отчёта).
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
