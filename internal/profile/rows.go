package profile

import "github.com/ginjaninja78/profile-extractor/internal/types"

// bannerColumn is where a centered section banner places its label.
const bannerColumn = 3

// IsBlankRow reports whether every cell of the row is empty. A row with no
// cells at all is blank.
func IsBlankRow(row types.Row) bool {
	for _, cell := range row {
		if !cell.Empty() {
			return false
		}
	}
	return true
}

// IsBannerRow reports whether the row is a visual section divider: column 3
// holds text and every other cell is empty.
func IsBannerRow(row types.Row) bool {
	if row.At(bannerColumn).Empty() {
		return false
	}
	for i, cell := range row {
		if i != bannerColumn && !cell.Empty() {
			return false
		}
	}
	return true
}

// skippable rows separate records and never contribute to one.
func skippable(row types.Row) bool {
	return IsBlankRow(row) || IsBannerRow(row)
}
