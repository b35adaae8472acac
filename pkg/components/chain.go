package components

import (
	"fmt"
	"io"

	"github.com/matzehuels/sysgraph/pkg/systems"
)

// Step is a system that does nothing but report its own load and destroy.
type Step struct {
	name string
	out  io.Writer
}

func (s *Step) Name() string { return s.name }

func (s *Step) Destroy() error {
	_, err := fmt.Fprintf(s.out, "destroy %s\n", s.name)
	return err
}

// Chain holds four step kinds wired as
//
//	first
//	second <- first
//	third
//	fourth <- second, third
//
// Loading Fourth constructs everything else first.
type Chain struct {
	First, Second, Third, Fourth systems.Kind[*Step]
}

// NewChain returns step kinds that report to out.
func NewChain(out io.Writer) *Chain {
	c := &Chain{}
	c.First = stepKind("first", out)
	c.Second = stepKind("second", out, c.First)
	c.Third = stepKind("third", out)
	c.Fourth = stepKind("fourth", out, c.Second, c.Third)
	return c
}

func stepKind(name string, out io.Writer, requires ...systems.Kind[*Step]) systems.Kind[*Step] {
	keys := make([]systems.Key, len(requires))
	for i, r := range requires {
		keys[i] = r.Key
	}
	return systems.Kind[*Step]{
		Key:      systems.Key(name),
		Requires: keys,
		Load: func(m *systems.Manager) (*Step, error) {
			for _, r := range requires {
				if _, err := systems.Load(m, r); err != nil {
					return nil, err
				}
			}
			if _, err := fmt.Fprintf(out, "load %s\n", name); err != nil {
				return nil, err
			}
			return &Step{name: name, out: out}, nil
		},
	}
}
