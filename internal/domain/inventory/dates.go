// Package inventory contiene los servicios de dominio puros del motor de stock perecedero:
// días calendario, vida útil, barrido de vencimientos, consumo FIFO, reconstrucción
// histórica y utilidad. No accede a la base de datos.
package inventory

import (
	"fmt"
	"regexp"
	"time"

	"github.com/jhoicas/perishable-inventory/internal/domain"
)

// DateLayout formato de fecha aceptado en la API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Epoch piso de ordenamiento cuando el libro está vacío.
var Epoch = time.Unix(0, 0).UTC()

// ParseDay valida y convierte un string YYYY-MM-DD en un día calendario UTC.
func ParseDay(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: la fecha %q no tiene el formato YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	day, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: la fecha %q no es una fecha calendario válida", domain.ErrInvalidInput, s)
	}
	return day, nil
}

// ToDay trunca un instante a la medianoche UTC de su día calendario.
func ToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay formatea un día como YYYY-MM-DD.
func FormatDay(day time.Time) string {
	return day.Format(DateLayout)
}

// DayRange rango inclusivo de días [From, To]. Vacío si From es posterior a To.
type DayRange struct {
	From time.Time
	To   time.Time
}

// Empty indica si el rango no contiene ningún día.
func (r DayRange) Empty() bool {
	return r.From.After(r.To)
}
