// Package scorer implements the per-token linear model that scores priority,
// category and type, trained against a fixed sample set.
package scorer

import (
	"math"
	"math/rand"
	"time"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/lexicon"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
)

// Weights maps a stemmed token to its learned contribution.
type Weights map[string]float64

// Prediction holds the sigmoid output of each head, always in (0, 1).
type Prediction struct {
	Priority float64 `json:"priority"`
	Category float64 `json:"category"`
	Type     float64 `json:"type"`
}

type Model struct {
	priority Weights
	category Weights
	typ      Weights

	samples   []models.TrainingSample
	maxEpochs int
	rng       *rand.Rand
	store     Store
}

type Option func(*Model)

// WithSeed pins the random source used to initialize weights.
func WithSeed(seed int64) Option {
	return func(m *Model) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSamples replaces the embedded training set.
func WithSamples(samples []models.TrainingSample) Option {
	return func(m *Model) {
		m.samples = samples
	}
}

// WithMaxEpochs caps training passes; values below 1 are ignored.
func WithMaxEpochs(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxEpochs = n
		}
	}
}

// New builds a model backed by store. Cached weights are used when they decode
// cleanly; otherwise the model is initialized, trained and saved. store may be nil.
func New(store Store, opts ...Option) *Model {
	m := &Model{
		samples:   DefaultSamples(),
		maxEpochs: constants.DefaultMaxEpochs,
		store:     store,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if m.load() {
		return m
	}
	m.Retrain(m.maxEpochs)
	return m
}

// reset assigns every vocabulary token a fresh weight in [-1, 1) in each map.
func (m *Model) reset() {
	vocab := lexicon.Vocabulary()
	m.priority = make(Weights, len(vocab))
	m.category = make(Weights, len(vocab))
	m.typ = make(Weights, len(vocab))
	for _, tok := range vocab {
		m.priority[tok] = m.rng.Float64()*2 - 1
		m.category[tok] = m.rng.Float64()*2 - 1
		m.typ[tok] = m.rng.Float64()*2 - 1
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func sum(w Weights, tokens []string) float64 {
	var total float64
	for _, tok := range tokens {
		total += w[tok]
	}
	return total
}

// Predict scores already-tokenized input. Unknown tokens contribute nothing.
func (m *Model) Predict(tokens []string) Prediction {
	return Prediction{
		Priority: sigmoid(sum(m.priority, tokens)),
		Category: sigmoid(sum(m.category, tokens)),
		Type:     sigmoid(sum(m.typ, tokens)),
	}
}

// PredictText tokenizes text and scores it.
func (m *Model) PredictText(text string) Prediction {
	return m.Predict(lexicon.Tokenize(text))
}

// Train applies one gradient-free nudge per known token toward the sample's targets.
func (m *Model) Train(sample models.TrainingSample) {
	tokens := lexicon.Tokenize(sample.Input)
	p := m.Predict(tokens)

	nudge(m.priority, tokens, PriorityTarget(sample.Expected.Priority)-p.Priority)
	nudge(m.category, tokens, CategoryTarget(sample.Expected.Category)-p.Category)
	nudge(m.typ, tokens, TypeTarget(sample.Expected.Type)-p.Type)
}

func nudge(w Weights, tokens []string, delta float64) {
	for _, tok := range tokens {
		if _, ok := w[tok]; ok {
			w[tok] += constants.LearningRate * delta
		}
	}
}

// TrainAll runs full passes over the sample set, checking priority accuracy every
// few epochs and stopping once the target is reached or maxEpochs is hit.
func (m *Model) TrainAll(maxEpochs int) (epochs int, accuracy float64) {
	if maxEpochs <= 0 {
		maxEpochs = m.maxEpochs
	}
	for epochs = 1; epochs <= maxEpochs; epochs++ {
		for _, s := range m.samples {
			m.Train(s)
		}
		if epochs%constants.AccuracyCheckEvery == 0 {
			if accuracy = m.Accuracy(); accuracy >= constants.TargetAccuracy {
				return epochs, accuracy
			}
		}
	}
	return maxEpochs, m.Accuracy()
}

// Accuracy is the share of samples whose bucketed priority prediction matches
// the expected label.
func (m *Model) Accuracy() float64 {
	if len(m.samples) == 0 {
		return 0
	}
	var hits int
	for _, s := range m.samples {
		if Bucket(m.PredictText(s.Input).Priority) == s.Expected.Priority {
			hits++
		}
	}
	return float64(hits) / float64(len(m.samples))
}

func (m *Model) Stats() models.TrainingStats {
	return models.TrainingStats{
		SamplesCount:    len(m.samples),
		AverageAccuracy: m.Accuracy(),
	}
}

// Retrain discards the current weights, retrains from fresh ones and persists the
// result. epochs <= 0 uses the configured cap.
func (m *Model) Retrain(epochs int) models.TrainingStats {
	m.reset()
	n, acc := m.TrainAll(epochs)
	logger.Info("scorer trained", "epochs", n, "accuracy", acc, "samples", len(m.samples))
	m.save()
	return models.TrainingStats{SamplesCount: len(m.samples), AverageAccuracy: acc}
}

// Bucket maps a priority score onto a level.
func Bucket(score float64) models.Priority {
	switch {
	case score > constants.NeuralHighThreshold:
		return models.PriorityHigh
	case score > constants.NeuralMedThreshold:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func PriorityTarget(p models.Priority) float64 {
	switch p {
	case models.PriorityHigh:
		return 1
	case models.PriorityLow:
		return 0
	default:
		return 0.5
	}
}

// CategoryTarget encodes a category as its position in lexicon.Categories over the
// number of categories. Unknown categories encode as the default category.
func CategoryTarget(category string) float64 {
	idx := indexOf(lexicon.Categories, category)
	if idx < 0 {
		idx = indexOf(lexicon.Categories, models.DefaultCategory)
	}
	return float64(idx) / float64(len(lexicon.Categories))
}

func TypeTarget(t models.TaskType) float64 {
	switch t {
	case models.TypeEvent:
		return 0.5
	case models.TypeNote:
		return 0
	default:
		return 1
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
