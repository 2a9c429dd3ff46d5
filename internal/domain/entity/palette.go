package entity

import (
	"fmt"
	"strings"
)

// Palette хранит упорядоченный набор цветов после кластеризации.
// Номер на шаблоне равен индексу + 1.
type Palette []Color

// Lookup ищет первый цвет палитры, похожий на c по доминирующему каналу c.
func (p Palette) Lookup(c Color, tolerance float32) (int, error) {
	for i, pc := range p {
		if c.Similar(pc, tolerance) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrPaletteMiss, c.Hex())
}

// Legend формирует подпись из номеров и цветов, по строке на цвет.
func (p Palette) Legend() string {
	var sb strings.Builder
	for i, c := range p {
		fmt.Fprintf(&sb, "%d — %s\n", i+1, c.Hex())
	}
	return sb.String()
}
