package constants

const (
	SettingTimezone    = "timezone"
	SettingCanvasWidth = "canvas_width"
	SettingNeuralBlend = "neural_blend"
	SettingMaxEpochs   = "max_epochs"

	DefaultTimezone = "Local" // Use system local timezone by default
)
