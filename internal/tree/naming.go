// Package tree edits an ontology forest by node id.
//
// Every edit rebuilds the path from the top-level slice down to the target
// and shares everything else, so a caller holding the previous Structure
// never observes a change. Illegal edits (a second root, children under a
// criteria, unknown ids) return the forest unchanged.
package tree

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// Base names for auto-named nodes.
const (
	LayerBaseName    = "New Layer"
	CriteriaBaseName = "Criteria"
)

// suffixes caches the "base (N)" matcher per base name.
var suffixes sync.Map

func suffixFor(base string) *regexp.Regexp {
	if re, ok := suffixes.Load(base); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := suffixes.LoadOrStore(base, regexp.MustCompile(regexp.QuoteMeta(base)+`\s*\((\d+)\)`))
	return re.(*regexp.Regexp)
}

// NextName picks the name for a new node of kind among siblings.
//
// The bare base is used while no sibling of the same kind carries it.
// Otherwise the result is "base (N)" with N one past the largest suffix seen;
// gaps are never refilled.
func NextName(siblings types.Structure, kind types.NodeType, base string) string {
	suffix := suffixFor(base)

	taken := false
	highest := 0
	for _, node := range siblings {
		if node.NodeType() != kind {
			continue
		}
		name := node.NodeName()
		if name == base {
			taken = true
			continue
		}
		m := suffix.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}

	if !taken {
		return base
	}
	return fmt.Sprintf("%s (%d)", base, highest+1)
}
