package session

// MemoryStore is an in-process PersistentStore. Used when no database is
// available and in tests.
type MemoryStore struct {
	values map[string]int
	writes int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// GetInt implements PersistentStore.
func (s *MemoryStore) GetInt(key string, def int) int {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// SetInt implements PersistentStore.
func (s *MemoryStore) SetInt(key string, value int) {
	s.values[key] = value
	s.writes++
}

// RaiseInt implements MaxStore.
func (s *MemoryStore) RaiseInt(key string, value, def int) (int, bool) {
	cur := s.GetInt(key, def)
	if value <= cur {
		return cur, false
	}
	s.SetInt(key, value)
	return value, true
}

// Writes returns how many SetInt calls the store has seen.
func (s *MemoryStore) Writes() int {
	return s.writes
}
