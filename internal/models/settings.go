package models

// Settings represents application-wide settings
type Settings struct {
	Timezone    string  `json:"timezone"`     // IANA timezone name or "Local"
	CanvasWidth int     `json:"canvas_width"` // inner width of the rendered canvas box
	NeuralBlend float64 `json:"neural_blend"` // probability of using the learned priority in the fallback path
	MaxEpochs   int     `json:"max_epochs"`   // training epoch cap
}
