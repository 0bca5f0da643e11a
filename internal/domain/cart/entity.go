// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"fmt"
	"math"
)

// Line is one product and its quantity. Quantity is always at least 1;
// absence from the cart is represented by removing the line.
type Line struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"qty"`
}

// Encode serializes lines to the persisted form, a JSON array of {id, qty}.
func Encode(lines []Line) (string, error) {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(data), nil
}

// Decode parses the persisted form and normalizes it: lines with a quantity
// below 1 are dropped and repeated ids are merged into the first occurrence.
func Decode(raw string) ([]Line, error) {
	var parsed []Line
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	lines := make([]Line, 0, len(parsed))
	index := make(map[int64]int, len(parsed))
	for _, l := range parsed {
		if l.Quantity < 1 {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			lines[i].Quantity = AddQuantity(lines[i].Quantity, l.Quantity)
			continue
		}
		index[l.ProductID] = len(lines)
		lines = append(lines, l)
	}
	return lines, nil
}

// AddQuantity adds b to a quantity, saturating at math.MaxInt. Quantities are
// always positive, so only the upper bound can overflow.
func AddQuantity(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
