package camera

import (
	"strconv"

	"github.com/vladimirvivien/go4vl/v4l2"

	"camview/pkg/ov"
	"camview/pkg/utils"
)

// controlSettings maps V4L2 control IDs to the values to reapply after
// every device open.
type controlSettings map[v4l2.CtrlID]v4l2.CtrlValue

// Controls worth surfacing. Devices that lack one simply skip it.
var knownCtrlIDs = []v4l2.CtrlID{
	9963776,  // Brightness
	9963777,  // Contrast
	9963778,  // Saturation
	9963788,  // White Balance, Automatic
	9963795,  // Gain
	9963800,  // Power Line Frequency
	9963802,  // White Balance Temperature
	9963803,  // Sharpness
	9963804,  // Backlight Compensation
	10094849, // Auto Exposure
	10094850, // Exposure Time, Absolute
	10094868, // White Balance, Auto & Preset
	10094872, // ISO Sensitivity, Auto
	10291459, // Compression Quality
}

// Controls reports the device's supported known controls with their
// current values and ranges.
func (c *Camera) Controls() ([]ov.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dev == nil {
		return nil, ErrNotOpen
	}

	var res []ov.Config
	for _, id := range knownCtrlIDs {
		ctrl, err := v4l2.GetControl(c.dev.Fd(), id)
		if err != nil {
			logger.Debugf("the device does not support control(%d)", id)
			continue
		}
		res = append(res, ctrlToConfig(ctrl))
	}

	return res, nil
}

// SetControl applies a control value and records it so it is reapplied
// after every open. Recording while closed is allowed.
func (c *Camera) SetControl(id v4l2.CtrlID, value v4l2.CtrlValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings[id] = value
	if c.dev == nil {
		return nil
	}

	return c.dev.SetControlValue(id, value)
}

func (c *Camera) applySettingsLocked() {
	if c.dev == nil {
		return
	}
	for k, v := range c.settings {
		if err := c.dev.SetControlValue(k, v); err != nil {
			logger.Warnf("set ctrl(%d) to %d, err: %s", k, v, err)
		}
	}
}

func ctrlToConfig(ctrl v4l2.Control) ov.Config {
	cfg := ov.Config{
		ID:      ctrl.ID,
		Value:   ctrl.Value,
		Name:    ctrl.Name,
		Minimum: ctrl.Minimum,
		Maximum: ctrl.Maximum,
		Step:    ctrl.Step,
	}
	if !ctrl.IsMenu() {
		return cfg
	}

	cfg.IsMenu = true
	items, err := ctrl.GetMenuItems()
	if err != nil {
		logger.Warnf("query menu items for ctrl(%d): %s", ctrl.ID, err)
		return cfg
	}
	for _, item := range items {
		name := item.Name
		// Integer menu names are raw little-endian int64 bytes.
		if ctrl.Type == v4l2.CtrlTypeIntegerMenu {
			name = strconv.FormatInt(utils.Str2int64(item.Name), 10)
		}
		cfg.MenuItems = append(cfg.MenuItems, name)
	}

	return cfg
}
