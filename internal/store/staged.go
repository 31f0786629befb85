package store

import "context"

// ReadFunc loads a committed value from a backend.
type ReadFunc func(ctx context.Context, key Key) ([]byte, bool, error)

type Write struct {
	Key   Key
	Value []byte
}

// Staged buffers writes on top of a backend read function. Reads see the
// buffered writes first. Backends without native transactions use it to
// commit everything in one batch after fn succeeds.
type Staged struct {
	read   ReadFunc
	writes map[Key][]byte
	order  []Key
}

func NewStaged(read ReadFunc) *Staged {
	return &Staged{read: read, writes: make(map[Key][]byte)}
}

func (s *Staged) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	if v, ok := s.writes[key]; ok {
		return clone(v), true, nil
	}
	return s.read(ctx, key)
}

func (s *Staged) Set(ctx context.Context, key Key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := s.writes[key]; !ok {
		s.order = append(s.order, key)
	}
	s.writes[key] = clone(value)
	return nil
}

// Writes returns buffered writes in first-write order.
func (s *Staged) Writes() []Write {
	out := make([]Write, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, Write{Key: k, Value: s.writes[k]})
	}
	return out
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
