package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration accepts either a Go duration string ("15m", "1h30m") or a plain
// integer number of minutes, in both JSON and TOML files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalTOML(v any) error {
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		d.Duration = parsed
	case float64:
		d.Duration = time.Duration(x * float64(time.Minute))
	case int64:
		d.Duration = time.Duration(x) * time.Minute
	default:
		return fmt.Errorf("invalid duration %v (%T)", v, v)
	}
	return nil
}
