package bitpacket

import "fmt"

// Structure is the byte-aligned container: children encode one after another
// in declaration order, and decode in the same order from one shared cursor.
// That ordering is what lets later fields resolve against earlier fields'
// already-decoded values through the context.
type Structure struct {
	Container
}

// NewStructure returns an empty byte-aligned container.
func NewStructure(name string) *Structure {
	s := &Structure{Container: NewContainer(name)}
	s.self = s
	return s
}

func (s *Structure) Encode(w *Writer, ctx Field) error {
	for _, f := range s.fields {
		if err := f.Encode(w, ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (s *Structure) Decode(r *Reader, ctx Field) error {
	s.beginDecode()
	defer s.endDecode()
	for i, f := range s.fields {
		if err := f.Decode(r, ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		s.decoded = i + 1
	}
	return nil
}
