package enums

import "testing"

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		name      string
		available int
		alert     bool
		want      StockState
	}{
		{"healthy", 50, false, StockStateInStock},
		{"low", 3, true, StockStateLowStock},
		{"zero", 0, true, StockStateOutOfStock},
		{"zero without alert", 0, false, StockStateOutOfStock},
		{"negative when reserved exceeds on hand", -2, true, StockStateOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyStock(tc.available, tc.alert); got != tc.want {
				t.Fatalf("ClassifyStock(%d, %v) = %s, want %s", tc.available, tc.alert, got, tc.want)
			}
		})
	}
}

func TestParseStockTransactionType(t *testing.T) {
	for _, valid := range validStockTransactionTypes {
		parsed, err := ParseStockTransactionType(valid.String())
		if err != nil {
			t.Fatalf("parse %q: %v", valid, err)
		}
		if parsed != valid {
			t.Fatalf("parse %q returned %q", valid, parsed)
		}
	}

	if _, err := ParseStockTransactionType("restocked"); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if StockTransactionType("restocked").IsValid() {
		t.Fatal("unknown type reported valid")
	}
}
