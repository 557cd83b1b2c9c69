package manager

import "github.com/rustyeddy/mt4adm/mt4"

// collect copies the records of an SDK-owned buffer into caller-owned
// views and returns the buffer to the SDK allocator. The deferred
// MemFree makes the release unconditional: it runs when the copy
// completes, when total says there is nothing to copy, and when view
// construction panics partway through. A nil buffer is a no-op.
//
// The returned slice holds value copies only; it never aliases SDK
// memory.
func collect[T, V any](api mt4.ManagerInterface, buf mt4.Buffer[T], total int, view func(T) V) []V {
	if buf == nil {
		return nil
	}
	defer api.MemFree(buf)

	if total <= 0 {
		return nil
	}
	out := make([]V, 0, total)
	for i := 0; i < total; i++ {
		out = append(out, view(buf.At(i)))
	}
	return out
}
