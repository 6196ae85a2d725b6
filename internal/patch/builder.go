// Package patch converts winning rule matches into a nested profile patch
// plus provenance metadata. Lock enforcement happens in the merge step
// that consumes the patch, not here.
package patch

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-profiler/internal/types"
)

// MatchesToPatch explodes each match's dot-path into a nested map holding
// just its value, ready to merge with AI or human JSON.
func MatchesToPatch(matches map[string]types.RuleMatch) map[string]any {
	nested := make(map[string]any)
	for field, m := range matches {
		insert(nested, strings.Split(field, "."), m.Value)
	}
	return nested
}

func insert(node map[string]any, path []string, value any) {
	if len(path) == 1 {
		node[path[0]] = value
		return
	}
	child, ok := node[path[0]].(map[string]any)
	if !ok {
		child = make(map[string]any)
		node[path[0]] = child
	}
	insert(child, path[1:], value)
}

// BuildRuleMetadata derives per-field provenance from the winning
// matches. Every rule-derived field is locked: its value must not be
// silently replaced by a lower-trust source.
func BuildRuleMetadata(matches map[string]types.RuleMatch) *types.RuleProvenance {
	prov := &types.RuleProvenance{
		RunID: uuid.New(),
		Rules: make(map[string]types.RuleMetadata, len(matches)),
	}
	for field, m := range matches {
		prov.Rules[field] = types.RuleMetadata{
			Value:      m.Value,
			Confidence: m.Confidence,
			SourceText: m.SourceText,
			Rule:       m.Rule,
			BlockIndex: m.BlockIndex,
			BlockType:  m.BlockType,
			Locked:     true,
		}
	}
	prov.Refresh()
	return prov
}
