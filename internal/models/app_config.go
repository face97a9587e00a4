package models

// AppConfig is a single key/value preference row. Writes are upserts.
type AppConfig struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (AppConfig) TableName() string {
	return "app_config"
}

const (
	ConfigSelectedModel = "selected_model_name"
	ConfigWindowX       = "window_x"
	ConfigWindowY       = "window_y"
	ConfigWindowWidth   = "window_width"
	ConfigWindowHeight  = "window_height"
)
