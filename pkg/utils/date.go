package utils

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey formata o dia (UTC) usado como chave de agregação
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// DaysCeil retorna a quantidade de dias entre from e to arredondada para cima, nunca negativa
func DaysCeil(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}

	return int(math.Ceil(d.Hours() / 24))
}
