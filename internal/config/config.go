package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Fetch  FetchConfig  `mapstructure:"fetch"  validate:"required"`
	Upload UploadConfig `mapstructure:"upload" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
// GeminiAPIKey is deliberately optional: when it is empty the server still
// starts, and the generation endpoints report service unavailable.
type LLMConfig struct {
	GeminiAPIKey             string  `mapstructure:"gemini_api_key"`
	ModelName                string  `mapstructure:"model_name"                  validate:"required"`
	Temperature              float32 `mapstructure:"temperature"                 validate:"gte=0,lte=2"`
	FlashcardMaxOutputTokens int32   `mapstructure:"flashcard_max_output_tokens" validate:"required,gt=0"`
	QuizMaxOutputTokens      int32   `mapstructure:"quiz_max_output_tokens"      validate:"required,gt=0"`
}

// FetchConfig contains settings for fetching remote documents.
type FetchConfig struct {
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"      validate:"required,gt=0"`
	UserAgent         string `mapstructure:"user_agent"           validate:"required"`
	MaxPlainTextChars int    `mapstructure:"max_plain_text_chars" validate:"required,gt=0"`
}

// UploadConfig contains settings for uploaded documents.
type UploadConfig struct {
	MaxSizeMB int `mapstructure:"max_size_mb" validate:"required,gt=0"`
}
