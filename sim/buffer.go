package sim

// buffer stands in for an SDK-allocated memory block. The server
// counts every allocation and every MemFree so tests can assert the
// adapter's exactly-once release discipline.
type buffer[T any] struct {
	items []T
	freed bool
}

func (b *buffer[T]) Len() int { return len(b.items) }
func (b *buffer[T]) At(i int) T { return b.items[i] }

// markFreed reports whether this was the first free.
func (b *buffer[T]) markFreed() bool {
	if b.freed {
		return false
	}
	b.freed = true
	return true
}

type sdkBuffer interface {
	markFreed() bool
}

// allocBuffer registers a new SDK-owned block. Callers hold s.mu.
func allocBuffer[T any](s *Server, items []T) *buffer[T] {
	s.allocs++
	return &buffer[T]{items: items}
}

func (s *Server) MemFree(buf any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := buf.(sdkBuffer)
	if !ok {
		return
	}
	if b.markFreed() {
		s.frees++
	} else {
		s.doubleFrees++
	}
}
