package systems

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/sysgraph/pkg/digraph"
)

// DumpDependencies writes one line per recorded vertex, prerequisites first:
//
//	settings has no dependencies
//	logging depends on [settings]
//
// Live systems are printed by [System.Name]; vertices that were declared as a
// requirement but never loaded are printed by key.
func (m *Manager) DumpDependencies(w io.Writer) error {
	var b strings.Builder
	for _, k := range m.order(digraph.TopDown) {
		prereqs := m.graph.Prerequisites(k)
		if len(prereqs) == 0 {
			fmt.Fprintf(&b, "%s has no dependencies\n", m.displayName(k))
			continue
		}
		names := make([]string, len(prereqs))
		for i, p := range prereqs {
			names[i] = m.displayName(p)
		}
		fmt.Fprintf(&b, "%s depends on [%s]\n", m.displayName(k), strings.Join(names, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (m *Manager) displayName(k Key) string {
	if rec, ok := m.live[k]; ok {
		return rec.sys.Name()
	}
	return string(k)
}
