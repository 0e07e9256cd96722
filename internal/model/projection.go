package model

// PoolInfo is a validated pool ready for projection.
type PoolInfo struct {
	Address string
	Pair    string
	APR     float64
}

// PoolProjection is the derived per-pool profit summary for one run.
type PoolProjection struct {
	Address          string
	Pair             string
	APR              float64
	CumulativeProfit float64
}
