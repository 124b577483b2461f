package enums

// StockState is the derived classification of an inventory record. It is
// recomputed from the quantities on every read and is never stored or
// settable directly.
type StockState string

const (
	StockStateInStock    StockState = "in_stock"
	StockStateLowStock   StockState = "low_stock"
	StockStateOutOfStock StockState = "out_of_stock"
)

// String implements fmt.Stringer.
func (s StockState) String() string {
	return string(s)
}

// ClassifyStock derives the stock state from the available quantity and the
// low-stock flag. Out-of-stock takes precedence over low-stock.
func ClassifyStock(quantityAvailable int, lowStockAlert bool) StockState {
	switch {
	case quantityAvailable <= 0:
		return StockStateOutOfStock
	case lowStockAlert:
		return StockStateLowStock
	default:
		return StockStateInStock
	}
}
