package ui

// Grid geometry.
const (
	// CardWidth is the outer width of one card including its border.
	CardWidth = 30

	// CardGap is the number of columns between cards.
	CardGap = 1

	// CardBodyLines is the fixed number of content lines inside a card.
	CardBodyLines = 4

	// LayoutCompactWidth is the threshold below which the header drops
	// secondary detail.
	LayoutCompactWidth = 80
)

// chromeLines is the header, command bar and footer.
const chromeLines = 3

// cardHeight is the outer height of one card row.
const cardHeight = CardBodyLines + 2

// gridColumns returns how many cards fit side by side in width.
func gridColumns(width int) int {
	cols := (width + CardGap) / (CardWidth + CardGap)
	if cols < 1 {
		return 1
	}
	return cols
}
