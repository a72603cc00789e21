package slideview

// TableLayout is the resolved pixel geometry of a table: cumulative column
// and row edges scaled to the hosting frame.
type TableLayout struct {
	ColEdges []float64
	RowEdges []float64
	Width    float64
	Height   float64
}

// scaleTrack scales the authored EMU sizes proportionally so they sum to
// exactly total pixels, returning cumulative edges (len(sizes)+1 entries,
// first 0, last total). Zero-sum tracks divide the total evenly.
func scaleTrack(sizes []int64, total float64) []float64 {
	edges := make([]float64, len(sizes)+1)
	if len(sizes) == 0 {
		return edges
	}
	var sum int64
	for _, s := range sizes {
		sum += s
	}
	if sum <= 0 {
		for i := 1; i <= len(sizes); i++ {
			edges[i] = total * float64(i) / float64(len(sizes))
		}
		return edges
	}
	var acc int64
	for i, s := range sizes {
		acc += s
		edges[i+1] = total * float64(acc) / float64(sum)
	}
	edges[len(sizes)] = total
	return edges
}

// layoutTable maps a table's authored grid onto its frame in pixels.
func layoutTable(t *TableShape, scale float64) TableLayout {
	w := EMUToPixel(t.Frame.CX, scale)
	h := EMUToPixel(t.Frame.CY, scale)
	return TableLayout{
		ColEdges: scaleTrack(t.ColWidths, w),
		RowEdges: scaleTrack(t.RowHeights, h),
		Width:    w,
		Height:   h,
	}
}

// CellRect returns the pixel box of the cell at (row, col), spanning merged
// columns and rows. Cells outside the declared grid get an empty box, so a
// row carrying more cells than the grid has columns degrades instead of
// indexing past the edges.
func (l TableLayout) CellRect(row, col, gridSpan, rowSpan int) (x, y, w, h float64) {
	if col < 0 || row < 0 || col >= len(l.ColEdges)-1 || row >= len(l.RowEdges)-1 {
		return 0, 0, 0, 0
	}
	if gridSpan < 1 {
		gridSpan = 1
	}
	if rowSpan < 1 {
		rowSpan = 1
	}
	c1 := col + gridSpan
	if c1 >= len(l.ColEdges) {
		c1 = len(l.ColEdges) - 1
	}
	r1 := row + rowSpan
	if r1 >= len(l.RowEdges) {
		r1 = len(l.RowEdges) - 1
	}
	x = l.ColEdges[col]
	y = l.RowEdges[row]
	w = l.ColEdges[c1] - x
	h = l.RowEdges[r1] - y
	return
}

// tableCellFill picks the fill for a cell: an explicit cell fill wins,
// otherwise the style supplies a header fill for the first row and banded
// fills for the rest.
func tableCellFill(t *TableShape, theme *Theme, row int, cell TableCell) Fill {
	if cell.Fill.Kind != FillNone {
		return cell.Fill
	}
	if t.FirstRow && row == 0 {
		return Fill{Kind: FillSolid, Color: theme.Colors.Accent1}
	}
	body := row
	if t.FirstRow {
		body = row - 1
	}
	if t.BandRow && body%2 == 0 {
		return Fill{Kind: FillSolid, Color: theme.Colors.Accent1.Tint(0.6)}
	}
	return Fill{Kind: FillSolid, Color: theme.Colors.Accent1.Tint(0.8)}
}

// tableCellTextColor matches the style fills: header rows render light text.
func tableCellTextColor(t *TableShape, theme *Theme, row int) Color {
	if t.FirstRow && row == 0 {
		return theme.Colors.Light1
	}
	return theme.Colors.Dark1
}
