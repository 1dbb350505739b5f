package models

// Expected is the supervised label set for one training sample.
type Expected struct {
	Priority Priority `json:"priority" yaml:"priority"`
	Category string   `json:"category" yaml:"category"`
	Type     TaskType `json:"type" yaml:"type"`
}

type TrainingSample struct {
	Input    string   `json:"input" yaml:"input"`
	Expected Expected `json:"expected" yaml:"expected"`
}

// TrainingStats summarizes priority accuracy over the fixed training set.
type TrainingStats struct {
	SamplesCount    int     `json:"samples_count"`
	AverageAccuracy float64 `json:"average_accuracy"`
}
