package enums

import "fmt"

// StockTransactionType labels the cause of a stock mutation in the ledger.
type StockTransactionType string

const (
	StockTransactionTypePurchase   StockTransactionType = "purchase"
	StockTransactionTypeReturn     StockTransactionType = "return"
	StockTransactionTypeAdjustment StockTransactionType = "adjustment"
	StockTransactionTypeDamaged    StockTransactionType = "damaged"
	StockTransactionTypeReceived   StockTransactionType = "received"
	StockTransactionTypeReserved   StockTransactionType = "reserved"
	StockTransactionTypeReleased   StockTransactionType = "released"
)

var validStockTransactionTypes = []StockTransactionType{
	StockTransactionTypePurchase,
	StockTransactionTypeReturn,
	StockTransactionTypeAdjustment,
	StockTransactionTypeDamaged,
	StockTransactionTypeReceived,
	StockTransactionTypeReserved,
	StockTransactionTypeReleased,
}

// String implements fmt.Stringer.
func (t StockTransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known StockTransactionType.
func (t StockTransactionType) IsValid() bool {
	for _, candidate := range validStockTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseStockTransactionType converts raw input into a StockTransactionType.
func ParseStockTransactionType(value string) (StockTransactionType, error) {
	for _, candidate := range validStockTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock transaction type %q", value)
}
