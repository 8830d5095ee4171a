package systems

import (
	"fmt"

	"github.com/decker502/columns/pkg/components"
	"github.com/decker502/columns/pkg/config"
)

// getProperty 读取变换属性
func getProperty(tr *components.TransformComponent, name string) (float64, error) {
	switch name {
	case config.PropScale:
		return tr.Scale, nil
	case config.PropOpacity:
		return tr.Opacity, nil
	case config.PropGrayscale:
		return tr.Grayscale, nil
	case config.PropX:
		return tr.X, nil
	case config.PropY:
		return tr.Y, nil
	case config.PropYPercent:
		return tr.YPercent, nil
	}
	return 0, fmt.Errorf("unknown property %q", name)
}

// setProperty 写入变换属性
func setProperty(tr *components.TransformComponent, name string, v float64) error {
	switch name {
	case config.PropScale:
		tr.Scale = v
	case config.PropOpacity:
		tr.Opacity = v
	case config.PropGrayscale:
		tr.Grayscale = v
	case config.PropX:
		tr.X = v
	case config.PropY:
		tr.Y = v
	case config.PropYPercent:
		tr.YPercent = v
	default:
		return fmt.Errorf("unknown property %q", name)
	}
	return nil
}
