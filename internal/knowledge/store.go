package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/lifeline-aid/platform/internal/shared/metrics"
)

// Store holds the condition and supply-chain lookup tables. It is loaded
// once at startup, read-only afterwards, and safe for unlimited concurrent
// readers.
type Store struct {
	conditions map[string]ConditionRecord
	supplies   map[string]SupplyRecord
}

type knowledgeFile struct {
	ConditionInfo map[string]ConditionRecord `json:"condition_info"`
	SupplyChain   map[string]SupplyRecord    `json:"supply_chain"`
}

// Load reads the knowledge-base JSON file. A missing or unreadable file is
// an error; callers that want to run on defaults alone should fall back to
// Empty.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var parsed knowledgeFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode knowledge base %s: %w", path, err)
	}

	return &Store{
		conditions: parsed.ConditionInfo,
		supplies:   parsed.SupplyChain,
	}, nil
}

// Empty returns a store with no entries; every lookup resolves to defaults.
func Empty() *Store {
	return &Store{}
}

// Resolve maps a predicted condition label to its description/precautions
// record and its supply record. The two lookups are independent: a label
// may have a real entry in one mapping and fall back to the default in the
// other. Unknown-label fallback is a deliberate silent default, not an error.
func (s *Store) Resolve(label string) (ConditionRecord, SupplyRecord) {
	condition, ok := s.conditions[label]
	if !ok {
		condition = DefaultCondition()
		metrics.RecordKnowledgeFallback("condition")
	}

	supply, ok := s.supplies[label]
	if !ok {
		supply = DefaultSupply()
		metrics.RecordKnowledgeFallback("supply")
	}

	return condition, supply
}

// Labels returns the sorted union of labels known to either mapping.
func (s *Store) Labels() []string {
	seen := make(map[string]struct{}, len(s.conditions)+len(s.supplies))
	for label := range s.conditions {
		seen[label] = struct{}{}
	}
	for label := range s.supplies {
		seen[label] = struct{}{}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Size returns how many condition entries are loaded.
func (s *Store) Size() int {
	return len(s.conditions)
}
