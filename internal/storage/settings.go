package storage

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/utils"
)

func DefaultSettings() models.Settings {
	return models.Settings{
		Timezone:    constants.DefaultTimezone,
		CanvasWidth: constants.DefaultCanvasWidth,
		NeuralBlend: constants.DefaultNeuralBlend,
		MaxEpochs:   constants.DefaultMaxEpochs,
	}
}

// SettingKeys lists the persisted setting keys in display order.
func SettingKeys() []string {
	keys := []string{
		constants.SettingTimezone,
		constants.SettingCanvasWidth,
		constants.SettingNeuralBlend,
		constants.SettingMaxEpochs,
	}
	sort.Strings(keys)
	return keys
}

// SettingsToMap flattens settings into the key/value rows the SQL stores keep.
func SettingsToMap(s models.Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:    s.Timezone,
		constants.SettingCanvasWidth: strconv.Itoa(s.CanvasWidth),
		constants.SettingNeuralBlend: strconv.FormatFloat(s.NeuralBlend, 'g', -1, 64),
		constants.SettingMaxEpochs:   strconv.Itoa(s.MaxEpochs),
	}
}

// ApplySetting parses value into the field named by key and validates it.
func ApplySetting(s *models.Settings, key, value string) error {
	switch key {
	case constants.SettingTimezone:
		if value == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		if !utils.ValidateTimezone(value) {
			return fmt.Errorf("invalid %s %q", key, value)
		}
		s.Timezone = value
	case constants.SettingCanvasWidth:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		if n < constants.MinCanvasWidth {
			return fmt.Errorf("%s must be at least %d", key, constants.MinCanvasWidth)
		}
		s.CanvasWidth = n
	case constants.SettingNeuralBlend:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
		s.NeuralBlend = f
	case constants.SettingMaxEpochs:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		if n < 1 {
			return fmt.Errorf("%s must be positive", key)
		}
		s.MaxEpochs = n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// SettingsFromMap rebuilds settings from stored rows. Missing keys keep their
// defaults; unknown keys are ignored.
func SettingsFromMap(rows map[string]string) (models.Settings, error) {
	s := DefaultSettings()
	for _, key := range SettingKeys() {
		value, ok := rows[key]
		if !ok {
			continue
		}
		if err := ApplySetting(&s, key, value); err != nil {
			return models.Settings{}, err
		}
	}
	return s, nil
}
