package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pmzi/WordSmith/internal/audio"
	"github.com/pmzi/WordSmith/internal/logging"
	"github.com/pmzi/WordSmith/internal/translation"
)

const (
	defaultWorkers = 4
	defaultTimeout = 60 * time.Second
)

// Settings is the resolved runtime configuration.
type Settings struct {
	StoragePath    string
	TargetLanguage string
	Workers        int
	Timeout        time.Duration
	Log            logging.Config
	Translation    *translation.Config

	// AudioDir enables pronunciation clips when set.
	AudioDir string
	Audio    *audio.Config
}

// DefaultStoragePath is $HOME/.local/state/wordsmith/storage.db.
func DefaultStoragePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "wordsmith", "storage.db")
}

func setDefaults() {
	defaults := translation.DefaultProviderConfig()
	audioDefaults := audio.DefaultProviderConfig()

	viper.SetDefault("storage.path", DefaultStoragePath())
	viper.SetDefault("provider.name", defaults.Provider)
	viper.SetDefault("provider.timeout", defaultTimeout)
	viper.SetDefault("openai.model", defaults.OpenAIModel)
	viper.SetDefault("openai.temperature", defaults.Temperature)
	viper.SetDefault("gemini.model", defaults.GeminiModel)
	viper.SetDefault("breaker.max_failures", defaults.BreakerMaxFailures)
	viper.SetDefault("breaker.open_timeout", defaults.BreakerOpenTimeout)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("batch.workers", defaultWorkers)
	viper.SetDefault("audio.format", audioDefaults.OutputFormat)
	viper.SetDefault("audio.model", audioDefaults.OpenAIModel)
	viper.SetDefault("audio.voice", audioDefaults.OpenAIVoice)
	viper.SetDefault("audio.speed", audioDefaults.OpenAISpeed)
	viper.SetDefault("audio.instruction", audioDefaults.OpenAIInstruction)
}

// LoadSettings merges flags, environment, config file and defaults.
func LoadSettings(flags *Flags) *Settings {
	setDefaults()

	settings := &Settings{
		StoragePath:    viper.GetString("storage.path"),
		TargetLanguage: viper.GetString("translation.target_language"),
		Workers:        viper.GetInt("batch.workers"),
		Timeout:        viper.GetDuration("provider.timeout"),
		Log: logging.Config{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Translation: &translation.Config{
			Provider:           viper.GetString("provider.name"),
			Fallback:           viper.GetString("provider.fallback"),
			Temperature:        float32(viper.GetFloat64("openai.temperature")),
			OpenAIKey:          GetOpenAIKey(),
			OpenAIOrgID:        GetOpenAIOrgID(),
			OpenAIModel:        viper.GetString("openai.model"),
			OpenAIBaseURL:      viper.GetString("openai.base_url"),
			GeminiKey:          GetGeminiKey(),
			GeminiModel:        viper.GetString("gemini.model"),
			GeminiBaseURL:      viper.GetString("gemini.base_url"),
			BreakerMaxFailures: viper.GetUint32("breaker.max_failures"),
			BreakerOpenTimeout: viper.GetDuration("breaker.open_timeout"),
		},
	}

	settings.AudioDir = viper.GetString("audio.dir")
	settings.Audio = &audio.Config{
		OutputFormat:      viper.GetString("audio.format"),
		OpenAIKey:         settings.Translation.OpenAIKey,
		OpenAIOrgID:       settings.Translation.OpenAIOrgID,
		OpenAIBaseURL:     settings.Translation.OpenAIBaseURL,
		OpenAIModel:       viper.GetString("audio.model"),
		OpenAIVoice:       viper.GetString("audio.voice"),
		OpenAISpeed:       viper.GetFloat64("audio.speed"),
		OpenAIInstruction: viper.GetString("audio.instruction"),
	}

	if flags != nil && flags.Debug {
		settings.Log.Level = "debug"
	}
	if settings.Workers < 1 {
		settings.Workers = 1
	}

	return settings
}
