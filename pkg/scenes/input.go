package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyRepeatDelay/keyRepeatInterval 按住方向键时的重复节奏（帧）
const (
	keyRepeatDelay    = 20
	keyRepeatInterval = 4
)

var keyCommands = []struct {
	key    ebiten.Key
	cmd    Command
	repeat bool
}{
	{ebiten.KeyArrowDown, CommandLineDown, true},
	{ebiten.KeyArrowUp, CommandLineUp, true},
	{ebiten.KeyPageDown, CommandPageDown, false},
	{ebiten.KeyPageUp, CommandPageUp, false},
	{ebiten.KeyHome, CommandHome, false},
	{ebiten.KeyEnd, CommandEnd, false},
	{ebiten.KeyH, CommandToggleHUD, false},
}

var variantKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// readCommands 读取本帧的键盘命令
func readCommands() []Command {
	var cmds []Command
	for _, kc := range keyCommands {
		if keyTriggered(kc.key, kc.repeat) {
			cmds = append(cmds, kc.cmd)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			cmds = append(cmds, CommandPageUp)
		} else {
			cmds = append(cmds, CommandPageDown)
		}
	}
	return cmds
}

func keyTriggered(key ebiten.Key, repeat bool) bool {
	if inpututil.IsKeyJustPressed(key) {
		return true
	}
	if !repeat {
		return false
	}
	d := inpututil.KeyPressDuration(key)
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// readVariantKey 数字键 1-9 按排序后的名称选择变体
func readVariantKey(names []string) (string, bool) {
	for i, key := range variantKeys {
		if i >= len(names) {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			return names[i], true
		}
	}
	return "", false
}
