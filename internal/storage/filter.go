package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"profitScope/internal/model"
)

// PoolFilter is a normalized pool address allow-list. An empty filter
// keeps every record.
type PoolFilter map[common.Address]struct{}

// ParsePoolFilter converts user-supplied address strings into a
// PoolFilter, rejecting anything that is not a hex address.
func ParsePoolFilter(inputs []string) (PoolFilter, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	filter := make(PoolFilter, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !common.IsHexAddress(input) {
			return nil, fmt.Errorf("invalid pool address: %s", input)
		}
		filter[common.HexToAddress(input)] = struct{}{}
	}
	if len(filter) == 0 {
		return nil, nil
	}
	return filter, nil
}

// Keep reports whether a record passes the filter. Record ids are
// normalized through address parsing for the comparison only; ids that
// do not parse never match a non-empty filter.
func (f PoolFilter) Keep(rec model.PoolRecord) bool {
	if len(f) == 0 {
		return true
	}

	var id string
	if err := json.Unmarshal(rec.ID, &id); err != nil {
		return false
	}
	if !common.IsHexAddress(id) {
		return false
	}
	_, ok := f[common.HexToAddress(id)]
	return ok
}

// Apply keeps the records that pass the filter, preserving input order.
func (f PoolFilter) Apply(records []model.PoolRecord) []model.PoolRecord {
	if len(f) == 0 {
		return records
	}

	kept := make([]model.PoolRecord, 0, len(records))
	for _, rec := range records {
		if f.Keep(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// Addresses returns the filter entries lowercased and sorted, the form
// the snapshot store compares against.
func (f PoolFilter) Addresses() []string {
	if len(f) == 0 {
		return nil
	}

	out := make([]string, 0, len(f))
	for addr := range f {
		out = append(out, strings.ToLower(addr.Hex()))
	}
	sort.Strings(out)
	return out
}
