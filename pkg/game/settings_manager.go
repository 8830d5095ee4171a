package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DemoSettings 演示的持久化设置
type DemoSettings struct {
	Variant         string  `yaml:"variant"`         // 上次选择的变体
	Lerp            float64 `yaml:"lerp"`            // 平滑滚动系数（0 表示使用配置文件）
	WheelMultiplier float64 `yaml:"wheelMultiplier"` // 滚轮倍率（0 表示使用配置文件）
	RestoreScroll   bool    `yaml:"restoreScroll"`   // 启动时恢复上次滚动位置
	LastScroll      float64 `yaml:"lastScroll"`      // 上次退出时的滚动位置
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DemoSettings {
	return &DemoSettings{
		Variant:       "grayscale",
		RestoreScroll: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DemoSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "demo"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方（加载失败只记录日志，不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值之上解码，缺失字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Reset 恢复默认设置（需调用 Save() 持久化）
func (sm *SettingsManager) Reset() {
	sm.settings = DefaultSettings()
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DemoSettings {
	return sm.settings
}

// SetVariant 设置当前变体
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetVariant(name string) {
	sm.settings.Variant = name
}

// SetLastScroll 记录滚动位置（负值按 0 处理）
func (sm *SettingsManager) SetLastScroll(scroll float64) {
	if scroll < 0 {
		scroll = 0
	}
	sm.settings.LastScroll = scroll
}

// SetRestoreScroll 设置是否在启动时恢复滚动位置
func (sm *SettingsManager) SetRestoreScroll(enabled bool) {
	sm.settings.RestoreScroll = enabled
}

// ScrollOptions 返回会话参数：设置中的非零值覆盖配置文件的值
func (sm *SettingsManager) ScrollOptions(lerp, wheelMultiplier float64) (float64, float64) {
	if sm.settings.Lerp > 0 && sm.settings.Lerp <= 1 {
		lerp = sm.settings.Lerp
	}
	if sm.settings.WheelMultiplier != 0 {
		wheelMultiplier = sm.settings.WheelMultiplier
	}
	return lerp, wheelMultiplier
}
