package order

import (
	"fmt"
	"strings"
	"time"

	"paintland/internal/domain"
)

const (
	// TimestampLayout is how order dates are shown to customers.
	TimestampLayout = "2006-01-02 15:04"

	NoColorLabel     = "No color selected"
	EmptyCartMessage = "Your cart is empty."
)

type Line struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ColorLabel string `json:"colorLabel"`
}

type Summary struct {
	Lines            []Line `json:"lines"`
	TotalQuantity    int    `json:"totalQuantity"`
	TimestampDisplay string `json:"timestamp"`
}

// Summarize projects cart lines into a Summary using only the fields
// stored on each line.
func Summarize(items []domain.LineItem, at time.Time) Summary {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			Name:       item.Name,
			Quantity:   item.Quantity,
			ColorLabel: ColorLabel(item.Shade),
		})
	}
	return Summary{
		Lines:            lines,
		TotalQuantity:    domain.TotalQuantity(items),
		TimestampDisplay: at.Format(TimestampLayout),
	}
}

// ColorLabel renders a variant as "Name (CODE)".
func ColorLabel(v *domain.ColorVariant) string {
	if v == nil {
		return NoColorLabel
	}
	name := strings.TrimSpace(v.Name)
	code := strings.TrimSpace(v.Code)
	switch {
	case name != "" && code != "":
		return fmt.Sprintf("%s (%s)", name, code)
	case name != "":
		return name
	case code != "":
		return code
	default:
		return NoColorLabel
	}
}

// ItemLines renders one bullet per line. It is the block shared by the
// display text and the order message.
func (s Summary) ItemLines() string {
	var b strings.Builder
	for i, line := range s.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "• %s - %s - Qty: %d", line.Name, line.ColorLabel, line.Quantity)
	}
	return b.String()
}

// DisplayText is the human readable cart used for copy to clipboard.
func (s Summary) DisplayText() string {
	if len(s.Lines) == 0 {
		return EmptyCartMessage
	}
	return fmt.Sprintf("%s\n\nTotal items: %d", s.ItemLines(), s.TotalQuantity)
}
