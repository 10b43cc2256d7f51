package products

import (
	"time"

	"github.com/pticevod/poultry-ledger/internal/domain/units"
)

// Product is a consumable (feed, medicine) with a stock balance kept in its
// native unit. Consumption requests in other units are converted into the
// native unit before the balance moves.
type Product struct {
	ID        int64
	Name      string
	Unit      units.Unit // native unit of the stock balance
	Stock     float64
	Active    bool
	CreatedAt time.Time
}
