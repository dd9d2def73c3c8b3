// Package clockfmt разбирает пользовательское время доставки в формате
// "HH:MM AM/PM" в пару (час, минута) 24-часовой шкалы.
package clockfmt

import (
	"fmt"
	"strings"
	"time"
)

// Layout — формат хранения времени доставки.
const Layout = "03:04 PM"

// Parse конвертирует строку вида "09:00 AM" в час и минуту 24-часовой шкалы.
// Регистр AM/PM и пробелы по краям не важны.
func Parse(s string) (hour, minute int, err error) {
	const op = "clockfmt.Parse"
	t, err := time.Parse(Layout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return t.Hour(), t.Minute(), nil
}

// At возвращает момент времени доставки в тот же день, что и now.
func At(s string, now time.Time) (time.Time, error) {
	const op = "clockfmt.At"
	hour, minute, err := Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}
