package model

// Settings holds the maze, layout and laser configuration of a run.
type Settings struct {
	// Maze generation
	MazeSize   [3]int  `json:"maze_size"`  // tiles along X, Y and Z
	Randomness float64 `json:"randomness"` // chance of carving from the newest cell

	// Sheet layout, in cells
	SheetWidth  int `json:"sheet_width"`
	SheetHeight int `json:"sheet_height"`
	Margin      int `json:"margin"`

	// Physical output
	CellWidth      float64 `json:"cell_width"`       // inches per cell
	LineWidth      float64 `json:"line_width"`       // inches, cut lines
	DebugLineWidth float64 `json:"debug_line_width"` // inches, preview lines
	FontSize       int     `json:"font_size"`        // label size in cells

	// Pipeline switches
	RepairIslands      bool `json:"repair_islands"`
	EliminateMidpoints bool `json:"eliminate_midpoints"`

	// Laser job
	LaserProfile string  `json:"laser_profile"` // name of the G-code profile to use
	FeedRate     float64 `json:"feed_rate"`     // cutting speed in/min
	TravelRate   float64 `json:"travel_rate"`   // rapid speed in/min
	LaserPower   int     `json:"laser_power"`   // S word while cutting
	Passes       int     `json:"passes"`        // cutting passes per path

	// Outputs written per sheet: "dxf", "pdf", "gcode", "png"
	Formats []string `json:"formats"`
}

// LaserProfile defines a post-processor configuration for a laser cutter
// controller.
type LaserProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Units       string `json:"units"` // "inches" or "mm"

	StartCode []string `json:"start_code"`
	LaserOn   string   `json:"laser_on"`  // e.g. "M3 S%d"
	LaserOff  string   `json:"laser_off"` // e.g. "M5"
	RapidMove string   `json:"rapid_move"`
	FeedMove  string   `json:"feed_move"`
	EndCode   []string `json:"end_code"`

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`
	DecimalPlaces int    `json:"decimal_places"`
}

// Built-in laser profiles
var LaserProfiles = []LaserProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl 1.1 laser mode (dynamic power)",
		Units:         "inches",
		StartCode:     []string{"G90", "G20", "$32=1"},
		LaserOn:       "M4 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC with spindle-driven laser",
		Units:         "inches",
		StartCode:     []string{"G90", "G20", "G17", "G94"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic laser G-code",
		Units:         "inches",
		StartCode:     []string{"G90", "G20"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a laser profile by name, or the Generic profile if not found.
func GetProfile(name string) LaserProfile {
	for _, p := range LaserProfiles {
		if p.Name == name {
			return p
		}
	}
	return LaserProfiles[len(LaserProfiles)-1]
}

// FindProfile looks a profile up among custom profiles first, then the
// built-in ones, falling back to Generic.
func FindProfile(name string, custom []LaserProfile) LaserProfile {
	for _, p := range custom {
		if p.Name == name {
			return p
		}
	}
	return GetProfile(name)
}

// IsBuiltInProfile reports whether name belongs to a built-in profile.
func IsBuiltInProfile(name string) bool {
	for _, p := range LaserProfiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range LaserProfiles {
		names = append(names, p.Name)
	}
	return names
}

func DefaultSettings() Settings {
	return Settings{
		MazeSize:           [3]int{3, 3, 3},
		Randomness:         0.5,
		SheetWidth:         DocumentWidth,
		SheetHeight:        DocumentHeight,
		Margin:             Margin,
		CellWidth:          CellWidth,
		LineWidth:          LaserLineWidth,
		DebugLineWidth:     DebugLineWidth,
		FontSize:           FontSize,
		RepairIslands:      true,
		EliminateMidpoints: true,
		LaserProfile:       "Generic",
		FeedRate:           20.0,
		TravelRate:         200.0,
		LaserPower:         1000,
		Passes:             1,
		Formats:            []string{"dxf", "pdf", "gcode", "png"},
	}
}

// Label is an assembly number printed on a placed panel section.
type Label struct {
	Position Coordinate `json:"position"` // sheet cell
	Text     string     `json:"text"`
}

// Placement is one panel placed on a sheet.
type Placement struct {
	Ref    PanelRef   `json:"ref"`
	Offset Coordinate `json:"offset"` // sheet cell of the raster origin
	Width  int        `json:"width"`  // raster size in cells
	Height int        `json:"height"`
	Paths  []CutPath  `json:"paths"`  // sheet coordinates
	Doc    string     `json:"doc"`

	Ordinal   int     `json:"ordinal"` // 1-based assembly order
	KeyNumber int     `json:"key_number"`
	Labels    []Label `json:"labels"`
}

// SheetResult represents one material sheet with its placed panels.
type SheetResult struct {
	Index      int         `json:"index"` // 1-based
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements"`
}

// UsedCells returns the number of raster cells covered by placements.
func (s SheetResult) UsedCells() int {
	total := 0
	for _, p := range s.Placements {
		total += p.Width * p.Height
	}
	return total
}

// Efficiency returns the covered share of the sheet as a percentage.
func (s SheetResult) Efficiency() float64 {
	area := s.Width * s.Height
	if area == 0 {
		return 0
	}
	return float64(s.UsedCells()) / float64(area) * 100.0
}

// CutSchematicSet is the packed result for a maze.
type CutSchematicSet struct {
	Pieces     PieceSet      `json:"-"`
	Grids      GridSet       `json:"-"`
	Schematics SchematicSet  `json:"-"`
	Sheets     []SheetResult `json:"sheets"`
	// Order lists every panel in assembly order.
	Order []PanelRef `json:"order"`
}

// Placements returns every placement in key order: sheet by sheet.
func (c CutSchematicSet) Placements() []Placement {
	var out []Placement
	for _, s := range c.Sheets {
		out = append(out, s.Placements...)
	}
	return out
}
