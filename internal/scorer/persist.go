package scorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/storage"
)

// Store is the slice of the key-value store the scorer needs.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// entry serializes as a two element [token, weight] array.
type entry struct {
	Token  string
	Weight float64
}

func (e entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Token, e.Weight})
}

func (e *entry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("weight entry has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Token); err != nil {
		return fmt.Errorf("weight token: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Weight); err != nil {
		return fmt.Errorf("weight value for %q: %w", e.Token, err)
	}
	return nil
}

type snapshot struct {
	Priority []entry `json:"priority"`
	Category []entry `json:"category"`
	Type     []entry `json:"type"`
}

func toEntries(w Weights) []entry {
	out := make([]entry, 0, len(w))
	for tok, v := range w {
		out = append(out, entry{Token: tok, Weight: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

func fromEntries(entries []entry) (Weights, error) {
	if len(entries) == 0 {
		return nil, errors.New("empty weight map")
	}
	w := make(Weights, len(entries))
	for _, e := range entries {
		if e.Token == "" {
			return nil, errors.New("empty token in weight map")
		}
		w[e.Token] = e.Weight
	}
	return w, nil
}

// Marshal encodes the three weight maps as sorted [token, weight] pairs.
func (m *Model) Marshal() ([]byte, error) {
	return json.Marshal(snapshot{
		Priority: toEntries(m.priority),
		Category: toEntries(m.category),
		Type:     toEntries(m.typ),
	})
}

// Unmarshal replaces the weights with a previously marshaled snapshot. The model is
// left untouched on error.
func (m *Model) Unmarshal(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode weights: %w", err)
	}
	priority, err := fromEntries(snap.Priority)
	if err != nil {
		return fmt.Errorf("priority weights: %w", err)
	}
	category, err := fromEntries(snap.Category)
	if err != nil {
		return fmt.Errorf("category weights: %w", err)
	}
	typ, err := fromEntries(snap.Type)
	if err != nil {
		return fmt.Errorf("type weights: %w", err)
	}
	m.priority, m.category, m.typ = priority, category, typ
	return nil
}

// load reports whether cached weights were restored. Every failure is a cache miss.
func (m *Model) load() bool {
	if m.store == nil {
		return false
	}
	raw, err := m.store.Get(constants.WeightsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Debug("no cached scorer weights", "key", constants.WeightsKey)
		} else {
			logger.Warn("failed to read scorer weights", "error", err)
		}
		return false
	}
	if err := m.Unmarshal([]byte(raw)); err != nil {
		logger.Warn("discarding corrupt scorer weights", "error", err)
		return false
	}
	logger.Debug("loaded cached scorer weights", "tokens", len(m.priority))
	return true
}

func (m *Model) save() {
	if m.store == nil {
		return
	}
	data, err := m.Marshal()
	if err != nil {
		logger.Error("failed to encode scorer weights", "error", err)
		return
	}
	if err := m.store.Set(constants.WeightsKey, string(data)); err != nil {
		logger.Error("failed to persist scorer weights", "error", err)
	}
}
