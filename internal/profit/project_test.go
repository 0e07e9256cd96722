package profit

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"profitScope/internal/model"
)

func TestValidatePool(t *testing.T) {
	valid := model.NewPoolRecord("0xabc", "WETH", "USDC", 12.5)

	info, err := ValidatePool(valid)
	if err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	if info.Address != "0xabc" {
		t.Fatalf("address = %q, want 0xabc", info.Address)
	}
	if info.Pair != "WETH / USDC" {
		t.Fatalf("pair = %q, want WETH / USDC", info.Pair)
	}
	if info.APR != 12.5 {
		t.Fatalf("apr = %v, want 12.5", info.APR)
	}
}

func TestValidatePoolStringAPR(t *testing.T) {
	rec := model.NewPoolRecord("0xabc", "WETH", "USDC", 0)
	rec.APR = json.RawMessage(`"11.54"`)

	info, err := ValidatePool(rec)
	if err != nil {
		t.Fatalf("string apr rejected: %v", err)
	}
	if math.Abs(info.APR-11.54) > 1e-9 {
		t.Fatalf("apr = %v, want 11.54", info.APR)
	}

	rec.APR = json.RawMessage(`" 7.5 "`)
	info, err = ValidatePool(rec)
	if err != nil {
		t.Fatalf("padded string apr rejected: %v", err)
	}
	if math.Abs(info.APR-7.5) > 1e-9 {
		t.Fatalf("apr = %v, want 7.5", info.APR)
	}
}

func TestValidatePoolRejections(t *testing.T) {
	base := func() model.PoolRecord {
		return model.NewPoolRecord("0xabc", "WETH", "USDC", 10)
	}

	cases := []struct {
		name   string
		mutate func(*model.PoolRecord)
		field  string
	}{
		{"missing id", func(r *model.PoolRecord) { r.ID = nil }, "id"},
		{"numeric id", func(r *model.PoolRecord) { r.ID = json.RawMessage(`123`) }, "id"},
		{"empty id", func(r *model.PoolRecord) { r.ID = json.RawMessage(`""`) }, "id"},
		{"missing token0", func(r *model.PoolRecord) { r.Token0 = nil }, "token0"},
		{"token0 without symbol", func(r *model.PoolRecord) { r.Token0 = json.RawMessage(`{}`) }, "token0"},
		{"token1 null", func(r *model.PoolRecord) { r.Token1 = json.RawMessage(`null`) }, "token1"},
		{"missing apr", func(r *model.PoolRecord) { r.APR = nil }, "apr"},
		{"null apr", func(r *model.PoolRecord) { r.APR = json.RawMessage(`null`) }, "apr"},
		{"non numeric apr", func(r *model.PoolRecord) { r.APR = json.RawMessage(`"fast"`) }, "apr"},
		{"boolean apr", func(r *model.PoolRecord) { r.APR = json.RawMessage(`true`) }, "apr"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := base()
			tc.mutate(&rec)

			_, err := ValidatePool(rec)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.HasPrefix(err.Error(), tc.field+":") {
				t.Fatalf("error %q does not name field %q", err, tc.field)
			}
		})
	}
}

func TestValidatePoolEmptyRecord(t *testing.T) {
	if _, err := ValidatePool(model.PoolRecord{}); err == nil {
		t.Fatal("empty record accepted")
	}
}

func TestFilterValidKeepsOrderAndSkips(t *testing.T) {
	broken := model.NewPoolRecord("0x02", "BAD", "POOL", 0)
	broken.APR = nil

	records := []model.PoolRecord{
		model.NewPoolRecord("0x01", "WETH", "USDC", 10),
		broken,
		model.NewPoolRecord("0x03", "WBTC", "DAI", 5),
	}

	pools := FilterValid(records, nil)
	if len(pools) != 2 {
		t.Fatalf("kept %d pools, want 2", len(pools))
	}
	if pools[0].Address != "0x01" || pools[1].Address != "0x03" {
		t.Fatalf("unexpected order: %v", pools)
	}
}

func TestProjectRanksByCumulativeProfit(t *testing.T) {
	pools := []model.PoolInfo{
		{Address: "0x01", Pair: "WETH / USDC", APR: 50},
		{Address: "0x02", Pair: "WBTC / DAI", APR: 75},
	}

	projections := Project(pools, 100, 365)
	if len(projections) != 2 {
		t.Fatalf("got %d projections, want 2", len(projections))
	}
	if projections[0].Address != "0x02" || projections[1].Address != "0x01" {
		t.Fatalf("ranking wrong: %v then %v", projections[0].Address, projections[1].Address)
	}
	if projections[0].CumulativeProfit < projections[1].CumulativeProfit {
		t.Fatal("projections not in descending profit order")
	}

	// With a 100 position over a full year the cumulative profit tracks
	// the APR itself.
	if math.Abs(projections[0].CumulativeProfit-75) > 1e-9 {
		t.Fatalf("profit = %v, want about 75", projections[0].CumulativeProfit)
	}
}

func TestProjectStableOnTies(t *testing.T) {
	pools := []model.PoolInfo{
		{Address: "0x0a", Pair: "A / B", APR: 10},
		{Address: "0x0b", Pair: "C / D", APR: 10},
		{Address: "0x0c", Pair: "E / F", APR: 10},
	}

	projections := Project(pools, 100, 30)
	for i, want := range []string{"0x0a", "0x0b", "0x0c"} {
		if projections[i].Address != want {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, projections[i].Address, want)
		}
	}
}

func TestProjectZeroHorizon(t *testing.T) {
	pools := []model.PoolInfo{{Address: "0x01", Pair: "A / B", APR: 25}}

	projections := Project(pools, 100, 0)
	if len(projections) != 1 {
		t.Fatalf("got %d projections, want 1", len(projections))
	}
	if projections[0].CumulativeProfit != 0 {
		t.Fatalf("profit = %v, want 0 for empty horizon", projections[0].CumulativeProfit)
	}
}

func TestProjectPoolsEndToEnd(t *testing.T) {
	broken := model.NewPoolRecord("0xdead", "X", "Y", 0)
	broken.APR = json.RawMessage(`"not a rate"`)

	records := []model.PoolRecord{
		model.NewPoolRecord("0x01", "WETH", "USDC", 5),
		broken,
		model.NewPoolRecord("0x02", "WBTC", "DAI", 7.5),
	}

	projections := ProjectPools(records, 100, 365, nil)
	if len(projections) != 2 {
		t.Fatalf("got %d projections, want 2", len(projections))
	}
	if projections[0].Address != "0x02" {
		t.Fatalf("best pool = %s, want 0x02", projections[0].Address)
	}
}
