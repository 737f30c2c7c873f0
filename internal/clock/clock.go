// Package clock abstrai a data/hora corrente para que validações de
// agendamento sejam determinísticas em teste.
package clock

import "time"

// Clock fornece o instante atual.
type Clock interface {
	Now() time.Time
}

// System delega para time.Now.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Hoje devolve a data corrente truncada (sem componente de hora), no fuso local.
func Hoje(c Clock) time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
