package model

import "encoding/json"

// PoolRecord is a single pool entry from a snapshot source, prior to
// validation. Fields stay raw so one malformed entry can be skipped on
// its own instead of failing the whole snapshot.
type PoolRecord struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Token0 json.RawMessage `json:"token0,omitempty"`
	Token1 json.RawMessage `json:"token1,omitempty"`
	APR    json.RawMessage `json:"apr,omitempty"`
}

// TokenRef carries the display symbol for one side of a pair.
type TokenRef struct {
	Symbol string `json:"symbol"`
}

// UnmarshalJSON tolerates entries that are not JSON objects: the record
// decodes empty and is rejected later during validation, so a bad entry
// cannot abort an otherwise valid snapshot.
func (r *PoolRecord) UnmarshalJSON(data []byte) error {
	type Alias PoolRecord
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		*r = PoolRecord{}
		return nil
	}
	*r = PoolRecord(a)
	return nil
}

// NewPoolRecord builds a record from already-validated snapshot values.
func NewPoolRecord(id, symbol0, symbol1 string, apr float64) PoolRecord {
	rawID, _ := json.Marshal(id)
	rawToken0, _ := json.Marshal(TokenRef{Symbol: symbol0})
	rawToken1, _ := json.Marshal(TokenRef{Symbol: symbol1})
	rawAPR, _ := json.Marshal(apr)

	return PoolRecord{
		ID:     rawID,
		Token0: rawToken0,
		Token1: rawToken1,
		APR:    rawAPR,
	}
}
