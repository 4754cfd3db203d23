package realm

import "sync"

// Store はレルム設定スナップショットの保持と参照を提供する。
// 読み取りはリクエスト処理経路から、書き込みは同期タスクからのみ行われる。
type Store struct {
	mu      sync.RWMutex
	configs map[string]*Config
}

// NewStore は空のStoreを生成する。
func NewStore() *Store {
	return &Store{configs: make(map[string]*Config)}
}

// Publish はレルム設定をアトミックに差し替える。
func (s *Store) Publish(cfg *Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.Name] = cfg
}

// Remove はレルム設定を削除する。
func (s *Store) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.configs, name)
}

// Snapshot はレルム設定スナップショットを返す。
func (s *Store) Snapshot(name string) (*Config, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[name]
	return cfg, ok
}

// Names は登録済みレルム名の一覧を返す。
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.configs))
	for name := range s.configs {
		names = append(names, name)
	}
	return names
}

// ForClient は指定NASが属するレルムのスナップショットを返す。
// 同一NASが複数レルムに属する構成は想定しない。
func (s *Store) ForClient(ip string) (*Config, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cfg := range s.configs {
		if _, ok := cfg.Clients[ip]; ok {
			return cfg, true
		}
	}
	return nil, false
}

// ByClientIP は全レルムを走査してNASのシークレットを解決する。
func (s *Store) ByClientIP(ip string) (string, bool) {
	cfg, ok := s.ForClient(ip)
	if !ok {
		return "", false
	}
	return cfg.SecretForClient(ip)
}
