package shell

import (
	"errors"
	"fmt"
)

var ErrSettingOutOfRange = errors.New("setting out of range")

// Settings are the user adjustable display options. They live for the
// process only.
type Settings struct {
	FontSizePx          int    `json:"fontSizePx"`
	IconSizePx          int    `json:"iconSizePx"`
	LayoutScalePercent  int    `json:"layoutScalePercent"`
	BackgroundImagePath string `json:"backgroundImagePath,omitempty"`
}

type settingRange struct {
	name     string
	min, max int
}

var (
	fontSizeRange    = settingRange{"font size", 10, 32}
	iconSizeRange    = settingRange{"icon size", 16, 48}
	layoutScaleRange = settingRange{"layout scale", 75, 150}
)

func DefaultSettings() Settings {
	return Settings{
		FontSizePx:         16,
		IconSizePx:         24,
		LayoutScalePercent: 100,
	}
}

func (r settingRange) check(v int) error {
	if v < r.min || v > r.max {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrSettingOutOfRange, r.name, v, r.min, r.max)
	}
	return nil
}

func (s Settings) Validate() error {
	return errors.Join(
		fontSizeRange.check(s.FontSizePx),
		iconSizeRange.check(s.IconSizePx),
		layoutScaleRange.check(s.LayoutScalePercent),
	)
}
