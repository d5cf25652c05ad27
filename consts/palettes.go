package consts

const (
	// VisibleOpacity is the fill opacity of features with a styled value.
	VisibleOpacity = 0.7
	// HighlightOpacity is used when hovering a feature.
	HighlightOpacity = VisibleOpacity + 0.1

	// BlankColor is the sentinel fill for undefined or below-threshold values.
	BlankColor = "#ffffff"
	// NoDataColor is the renderer default for features without any style.
	NoDataColor = "#d7e3f4"
	// BorderColor is the stroke color of feature outlines.
	BorderColor = "#262626"

	DefaultPalette = "Reds_03"
)

// Palettes holds the named color scales available for choropleth maps,
// ordered from low to high values.
var Palettes map[string][]string

// Colors holds the named base colors used by the time series charts.
var Colors map[string]string

func init() {
	Palettes = make(map[string][]string)

	Palettes["Reds_03"] = []string{"#fee0d2", "#fc9272", "#de2d26"}
	Palettes["Reds_05"] = []string{"#fee5d9", "#fcae91", "#fb6a4a", "#de2d26", "#a50f15"}
	Palettes["Blues_03"] = []string{"#deebf7", "#9ecae1", "#3182bd"}
	Palettes["Greens_03"] = []string{"#e5f5e0", "#a1d99b", "#31a354"}
	Palettes["Purples_03"] = []string{"#efedf5", "#bcbddc", "#756bb1"}
	Palettes["Oranges_03"] = []string{"#fee6ce", "#fdae6b", "#e6550d"}
	Palettes["Greys_03"] = []string{"#f0f0f0", "#bdbdbd", "#636363"}
	Palettes["YlOrRd_03"] = []string{"#ffeda0", "#feb24c", "#f03b20"}
	Palettes["YlOrRd_05"] = []string{"#ffffb2", "#fecc5c", "#fd8d3c", "#f03b20", "#bd0026"}
	Palettes["BuPu_03"] = []string{"#e0ecf4", "#9ebcda", "#8856a7"}

	Colors = make(map[string]string)

	Colors["blue"] = "#1f77b4"
	Colors["orange"] = "#ff7f0e"
	Colors["green"] = "#2ca02c"
	Colors["red"] = "#d62728"
	Colors["purple"] = "#9467bd"
	Colors["brown"] = "#8c564b"
	Colors["pink"] = "#e377c2"
	Colors["gray"] = "#7f7f7f"
	Colors["yellow"] = "#bcbd22"
	Colors["cyan"] = "#17becf"
}
