package settings

// Config is the configuration for the btree command
type Config struct {
	Tree   Tree   `mapstructure:"tree" yaml:"tree"`
	Logger Logger `mapstructure:"logger" yaml:"logger"`
}

// Tree is the configuration for a tree. Order 0 selects the library default.
type Tree struct {
	Order int `mapstructure:"order" yaml:"order" validate:"eq=0|gte=3"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`   // Days
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}
