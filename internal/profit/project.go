package profit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"profitScope/internal/model"
)

// ValidatePool extracts the fields a projection needs from a raw
// snapshot entry. The error names the first field that is missing or
// unusable so skip diagnostics stay actionable.
func ValidatePool(rec model.PoolRecord) (model.PoolInfo, error) {
	address, err := stringField(rec.ID)
	if err != nil {
		return model.PoolInfo{}, fmt.Errorf("id: %w", err)
	}
	symbol0, err := symbolField(rec.Token0)
	if err != nil {
		return model.PoolInfo{}, fmt.Errorf("token0: %w", err)
	}
	symbol1, err := symbolField(rec.Token1)
	if err != nil {
		return model.PoolInfo{}, fmt.Errorf("token1: %w", err)
	}
	apr, err := aprField(rec.APR)
	if err != nil {
		return model.PoolInfo{}, fmt.Errorf("apr: %w", err)
	}

	return model.PoolInfo{
		Address: address,
		Pair:    fmt.Sprintf("%s / %s", symbol0, symbol1),
		APR:     apr,
	}, nil
}

// FilterValid keeps the records that pass validation, in input order,
// logging one diagnostic per rejected record.
func FilterValid(records []model.PoolRecord, logger *zap.Logger) []model.PoolInfo {
	if logger == nil {
		logger = zap.NewNop()
	}

	pools := make([]model.PoolInfo, 0, len(records))
	for i, rec := range records {
		info, err := ValidatePool(rec)
		if err != nil {
			logger.Warn("skipping pool record", zap.Int("index", i), zap.Error(err))
			continue
		}
		pools = append(pools, info)
	}
	return pools
}

// Project computes the end-of-horizon profit for each pool and ranks the
// result by cumulative profit, best first. Ties keep input order.
func Project(pools []model.PoolInfo, startPosition float64, numDays int) []model.PoolProjection {
	projections := make([]model.PoolProjection, 0, len(pools))
	for _, pool := range pools {
		series := CumulativeProfits(DailyProfit(pool.APR, startPosition), numDays)

		var cumulative float64
		if len(series) > 0 {
			cumulative = series[len(series)-1]
		}

		projections = append(projections, model.PoolProjection{
			Address:          pool.Address,
			Pair:             pool.Pair,
			APR:              pool.APR,
			CumulativeProfit: cumulative,
		})
	}

	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].CumulativeProfit > projections[j].CumulativeProfit
	})

	return projections
}

// ProjectPools validates, projects and ranks raw snapshot records in one
// pass. Records that fail validation are skipped with a diagnostic.
func ProjectPools(records []model.PoolRecord, startPosition float64, numDays int, logger *zap.Logger) []model.PoolProjection {
	return Project(FilterValid(records, logger), startPosition, numDays)
}

func stringField(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing")
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("not a string: %s", raw)
	}
	if value == "" {
		return "", fmt.Errorf("empty")
	}
	return value, nil
}

func symbolField(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing")
	}
	var token model.TokenRef
	if err := json.Unmarshal(raw, &token); err != nil {
		return "", fmt.Errorf("not a token object: %s", raw)
	}
	if token.Symbol == "" {
		return "", fmt.Errorf("symbol missing")
	}
	return token.Symbol, nil
}

// aprField accepts a JSON number or a numeric string, the two shapes the
// snapshot is known to carry.
func aprField(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("missing")
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0, fmt.Errorf("not numeric: %q", text)
		}
		return value, nil
	}

	return 0, fmt.Errorf("not numeric: %s", raw)
}
