package workgrid

// Screen indicates which screen is currently displayed
type Screen int

const (
	GridScreen Screen = iota
	DetailScreen
	FilterScreen
)
