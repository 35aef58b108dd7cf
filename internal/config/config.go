package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultGroqBaseURL     = "https://api.groq.com/openai/v1"
	defaultSpeechModel     = "whisper-large-v3"
	defaultChatModel       = "llama-3.1-8b-instant"
	defaultMaxUploadBytes  = 24 << 20
	defaultChunkSeconds    = 900
	defaultWorkerCount     = 4
	defaultQueueSize       = 64
	defaultJobTimeout      = 900
	defaultMetadataGraceMs = 2000
	defaultMinFreeDiskMB   = 512
)

type Config struct {
	Server   ServerConfig
	Logger   Logger
	Registry RegistryConfig
	Redis    RedisConfig
	S3       S3Config
	Worker   WorkerConfig
	Youtube  YoutubeConfig
	Groq     GroqConfig
}

type ServerConfig struct {
	AppVersion        string
	Port              string
	Mode              string
	ReadTimeout       int
	WriteTimeout      int
	CtxDefaultTimeout int
	AllowOrigins      []string
}

// RegistryConfig selects where job records live. Backend is "memory" or "redis".
type RegistryConfig struct {
	Backend   string
	KeyPrefix string
	TTLHours  int
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	TLS           bool
}

type S3Config struct {
	Endpoint             string
	Region               string
	AccessKey            string
	SecretKey            string
	TranscriptBucket     string
	PresignExpireMinutes int
}

type WorkerConfig struct {
	WorkerCount        int
	QueueSize          int
	JobTimeoutSeconds  int
	MaxCPUUsage        float64
	CPUCheckIntervalMs int
}

type YoutubeConfig struct {
	HTTPTimeoutSeconds int
	PreferredLanguages []string
	MetadataGraceMs    int
	TempDir            string
	MinFreeDiskMB      uint64
	MaxAudioBytes      int64
}

type GroqConfig struct {
	APIKey         string
	BaseURL        string
	SpeechModel    string
	ChatModel      string
	MaxUploadBytes int64
	ChunkSeconds   int
	FFmpegPath     string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func (w WorkerConfig) JobTimeout() time.Duration {
	return time.Duration(w.JobTimeoutSeconds) * time.Second
}

func (y YoutubeConfig) MetadataGrace() time.Duration {
	return time.Duration(y.MetadataGraceMs) * time.Millisecond
}

func (y YoutubeConfig) HTTPTimeout() time.Duration {
	return time.Duration(y.HTTPTimeoutSeconds) * time.Second
}

// SpeechEnabled reports whether a speech-to-text credential is configured.
func (g GroqConfig) SpeechEnabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

// LoadConfig reads the YAML file when it exists. A missing file is fine: defaults and
// environment variables still apply.
func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("Groq.APIKey", "GROQ_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("Server.Port", "PORT"); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":5000"
	} else if !strings.Contains(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60
	}
	if c.Server.CtxDefaultTimeout == 0 {
		c.Server.CtxDefaultTimeout = 5
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Encoding == "" {
		c.Logger.Encoding = "console"
	}
	if c.Registry.Backend == "" {
		c.Registry.Backend = "memory"
	}
	if c.Registry.KeyPrefix == "" {
		c.Registry.KeyPrefix = "transcript:job:"
	}
	if c.Registry.TTLHours == 0 {
		c.Registry.TTLHours = 24
	}
	if c.S3.PresignExpireMinutes == 0 {
		c.S3.PresignExpireMinutes = 60
	}
	if c.Worker.WorkerCount <= 0 {
		c.Worker.WorkerCount = defaultWorkerCount
	}
	if c.Worker.QueueSize <= 0 {
		c.Worker.QueueSize = defaultQueueSize
	}
	if c.Worker.JobTimeoutSeconds <= 0 {
		c.Worker.JobTimeoutSeconds = defaultJobTimeout
	}
	if c.Worker.CPUCheckIntervalMs <= 0 {
		c.Worker.CPUCheckIntervalMs = 1000
	}
	if c.Youtube.HTTPTimeoutSeconds <= 0 {
		c.Youtube.HTTPTimeoutSeconds = 30
	}
	if len(c.Youtube.PreferredLanguages) == 0 {
		c.Youtube.PreferredLanguages = []string{"en"}
	}
	if c.Youtube.MetadataGraceMs <= 0 {
		c.Youtube.MetadataGraceMs = defaultMetadataGraceMs
	}
	if c.Youtube.TempDir == "" {
		c.Youtube.TempDir = os.TempDir()
	}
	if c.Youtube.MinFreeDiskMB == 0 {
		c.Youtube.MinFreeDiskMB = defaultMinFreeDiskMB
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = defaultGroqBaseURL
	}
	if c.Groq.SpeechModel == "" {
		c.Groq.SpeechModel = defaultSpeechModel
	}
	if c.Groq.ChatModel == "" {
		c.Groq.ChatModel = defaultChatModel
	}
	if c.Groq.MaxUploadBytes <= 0 {
		c.Groq.MaxUploadBytes = defaultMaxUploadBytes
	}
	if c.Groq.ChunkSeconds <= 0 {
		c.Groq.ChunkSeconds = defaultChunkSeconds
	}
	if c.Groq.FFmpegPath == "" {
		c.Groq.FFmpegPath = "ffmpeg"
	}
}

// Default returns a configuration with every default filled in and no file or environment applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}
