package models

// HeatmapPoint is an attention point in page-relative coordinates:
// x is a fraction of the viewport width, y a fraction of the page height.
type HeatmapPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}

// HeatmapData is the heatmap artifact embedded in a report.
// Screenshot and HeatmapImage are artifact references (data URIs or blob URLs).
type HeatmapData struct {
	Screenshot    string         `json:"screenshot"`
	HeatmapImage  string         `json:"heatmapImage"`
	HeatmapPoints []HeatmapPoint `json:"heatmapPoints"`
}

// EmptyHeatmapData is the degraded result returned when heatmap generation fails.
func EmptyHeatmapData() HeatmapData {
	return HeatmapData{HeatmapPoints: []HeatmapPoint{}}
}

// IsEmpty reports whether the heatmap carries no images and no points
func (h HeatmapData) IsEmpty() bool {
	return h.Screenshot == "" && h.HeatmapImage == "" && len(h.HeatmapPoints) == 0
}
