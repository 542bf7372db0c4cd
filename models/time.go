package models

import "time"

// TimestampLayout tem largura fixa para ordenar corretamente como string.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formata t em UTC no layout de persistência.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
