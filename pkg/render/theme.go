package render

// Theme holds colors and geometry for one render target.
type Theme struct {
	Background    string
	Grid          string
	Axis          string
	Text          string
	Accent        string
	Error         string
	ErrorBand     string
	MarkerOutline string

	GridWidth    float64
	GridDash     []float64
	AxisWidth    float64
	CurveWidth   float64
	MarkerRadius float64
	MarkerStroke float64

	// LabelGap separates tick labels from the axis; LabelHeight keeps
	// x labels above the bottom edge.
	LabelGap    float64
	LabelHeight float64

	// Error overlay band, measured from the bottom-left corner.
	ErrorBandWidth  float64
	ErrorBandHeight float64
	ErrorBandBottom float64
	ErrorTextInset  float64
}

// Palette is the color cycle assigned to new series.
var Palette = []string{
	"#3fa7ff", "#ff6b6b", "#6ee7b7", "#fbbf24", "#c084fc", "#f472b6", "#60a5fa",
}

// PaletteColor returns the i-th palette color, cycling.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// DefaultTheme is the dark theme used for PNG export.
func DefaultTheme() Theme {
	return Theme{
		Background:    "#0f1115",
		Grid:          "#2a2f3a",
		Axis:          "#6b7280",
		Text:          "#e6e6e6",
		Accent:        "#3fa7ff",
		Error:         "#ff6b6b",
		ErrorBand:     "#ff6b6b14",
		MarkerOutline: "#ffffff",

		GridWidth:    1,
		GridDash:     []float64{3, 3},
		AxisWidth:    1.5,
		CurveWidth:   2,
		MarkerRadius: 6,
		MarkerStroke: 2,

		LabelGap:    4,
		LabelHeight: 14,

		ErrorBandWidth:  560,
		ErrorBandHeight: 70,
		ErrorBandBottom: 10,
		ErrorTextInset:  12,
	}
}
