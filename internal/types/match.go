package types

import (
	"sort"

	"github.com/google/uuid"
)

// HighConfidenceThreshold marks rule matches trusted enough to surface in
// the high-confidence provenance list.
const HighConfidenceThreshold = 0.9

// RuleMatch is one candidate field value produced by a deterministic
// extractor during a single extraction run. Value is a string, number,
// or bool depending on the target field.
type RuleMatch struct {
	Field      string  `json:"field"`
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
	SourceText string  `json:"source_text"`
	Rule       string  `json:"rule"`
	BlockIndex int     `json:"block_index"`
	BlockType  string  `json:"block_type"`
}

// RuleMetadata is the persisted provenance record for one field.
type RuleMetadata struct {
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
	SourceText string  `json:"source_text"`
	Rule       string  `json:"rule"`
	BlockIndex int     `json:"block_index"`
	BlockType  string  `json:"block_type"`
	Locked     bool    `json:"locked"`
}

// RuleProvenance accompanies a canonical profile and records which fields
// came from deterministic rules. Locked fields must not be silently
// replaced by lower-trust sources.
type RuleProvenance struct {
	RunID                uuid.UUID               `json:"run_id"`
	Rules                map[string]RuleMetadata `json:"rules"`
	LockedFields         []string                `json:"locked_fields"`
	HighConfidenceFields []string                `json:"high_confidence_fields"`
}

// Merge folds provenance from a later extraction cycle into p. Entries are
// additive: a field locked in an earlier cycle stays locked even when the
// later cycle produced nothing for it. The later cycle's RunID wins.
func (p *RuleProvenance) Merge(next *RuleProvenance) {
	if next == nil {
		return
	}
	if p.Rules == nil {
		p.Rules = make(map[string]RuleMetadata)
	}
	for field, meta := range next.Rules {
		p.Rules[field] = meta
	}
	if next.RunID != uuid.Nil {
		p.RunID = next.RunID
	}
	p.Refresh()
}

// Refresh recomputes the derived LockedFields and HighConfidenceFields
// lists from the Rules map. Both lists are sorted.
func (p *RuleProvenance) Refresh() {
	p.LockedFields = p.LockedFields[:0]
	p.HighConfidenceFields = p.HighConfidenceFields[:0]
	for field, meta := range p.Rules {
		if meta.Locked {
			p.LockedFields = append(p.LockedFields, field)
		}
		if meta.Confidence >= HighConfidenceThreshold {
			p.HighConfidenceFields = append(p.HighConfidenceFields, field)
		}
	}
	sort.Strings(p.LockedFields)
	sort.Strings(p.HighConfidenceFields)
}
