package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/perishable-inventory/internal/domain"
)

// ShelfLife vida útil fija en días. Un lote comprado el día D puede vencerse
// cuando la fecha de operación alcanza D + ShelfLife.
type ShelfLife int

// NewShelfLife valida que la vida útil sea de al menos un día.
func NewShelfLife(days int) (ShelfLife, error) {
	if days < 1 {
		return 0, fmt.Errorf("%w: vida útil de %d días", domain.ErrInvalidInput, days)
	}
	return ShelfLife(days), nil
}

// Cutoff día de compra hasta el cual (inclusive) los lotes están vencidos en day.
func (s ShelfLife) Cutoff(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(s))
}

// ExpiryDay día en que vence un lote comprado en purchaseDay.
func (s ShelfLife) ExpiryDay(purchaseDay time.Time) time.Time {
	return purchaseDay.AddDate(0, 0, int(s))
}
