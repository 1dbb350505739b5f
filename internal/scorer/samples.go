package scorer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tasklit/internal/lexicon"
	"github.com/julianstephens/tasklit/internal/models"
)

//go:embed samples.yaml
var samplesYAML []byte

var defaultSamples []models.TrainingSample

func init() {
	samples, err := ParseSamples(samplesYAML)
	if err != nil {
		panic(fmt.Sprintf("scorer: embedded samples.yaml: %v", err))
	}
	defaultSamples = samples
}

// DefaultSamples returns a copy of the embedded training set.
func DefaultSamples() []models.TrainingSample {
	out := make([]models.TrainingSample, len(defaultSamples))
	copy(out, defaultSamples)
	return out
}

// ParseSamples decodes a YAML training set and checks every label.
func ParseSamples(data []byte) ([]models.TrainingSample, error) {
	var doc struct {
		Samples []models.TrainingSample `yaml:"samples"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for i, s := range doc.Samples {
		if s.Input == "" {
			return nil, fmt.Errorf("sample %d: empty input", i)
		}
		if _, ok := models.ParsePriority(string(s.Expected.Priority)); !ok {
			return nil, fmt.Errorf("sample %d: unknown priority %q", i, s.Expected.Priority)
		}
		if _, ok := models.ParseTaskType(string(s.Expected.Type)); !ok {
			return nil, fmt.Errorf("sample %d: unknown type %q", i, s.Expected.Type)
		}
		if indexOf(lexicon.Categories, s.Expected.Category) < 0 {
			return nil, fmt.Errorf("sample %d: unknown category %q", i, s.Expected.Category)
		}
	}
	return doc.Samples, nil
}
