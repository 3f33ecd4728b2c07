package storage

import "sync"

// MemorySlot keeps the snapshot in memory only. Used by tests and by
// ephemeral demo runs where nothing should touch disk.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

// NewMemorySlot returns an empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// ReadSnapshot returns the stored snapshot document
func (s *MemorySlot) ReadSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNoSnapshot
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// WriteSnapshot overwrites the slot
func (s *MemorySlot) WriteSnapshot(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// Close is a no-op
func (s *MemorySlot) Close() error {
	return nil
}
