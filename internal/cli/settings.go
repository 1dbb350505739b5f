package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tasklit/internal/storage"
)

type SettingsCmd struct {
	Set []string `arg:"" optional:"" help:"key=value pairs to update (timezone, canvas_width, neural_blend, max_epochs)."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if len(c.Set) > 0 {
		for _, pair := range c.Set {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("expected key=value, got %q", pair)
			}
			if err := storage.ApplySetting(&settings, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
				return err
			}
		}
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.println("Settings updated successfully.")
	}

	values := storage.SettingsToMap(settings)
	ctx.println("Current Settings:")
	for _, key := range storage.SettingKeys() {
		ctx.printf("  %-14s %s\n", key+":", values[key])
	}
	return nil
}
