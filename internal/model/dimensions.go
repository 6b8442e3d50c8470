package model

// Fixed physical dimensions of the cut pieces. A tile is one maze
// passageway; a cell is the smallest unit the laser layout works in.
const (
	TileSize       = 6     // cells across the interior of a passageway
	CellsPerTile   = TileSize + 1
	Margin         = 2     // cells kept clear on each side of a sheet
	CellWidth      = 0.125 // inches
	LaserLineWidth = 0.001 // inches
	DebugLineWidth = 0.01  // inches
	DocumentWidth  = 8 * 24
	DocumentHeight = 8 * 19
	FontSize       = 4
)

// TileToCell converts a tile index to the cell index of its lower boundary.
func TileToCell(tile int) int {
	return tile * CellsPerTile
}
