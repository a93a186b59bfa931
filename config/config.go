package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// MaxDuration is the longest source the bot will agree to download.
	MaxDuration = 7200

	// MaxFileSize is the upload ceiling enforced after download, before upload.
	MaxFileSize int64 = 2 * 1024 * 1024 * 1024

	// SessionTTL bounds how long an unanswered quality prompt stays claimable.
	SessionTTL = 30 * time.Minute
)

type Config struct {
	BotToken       string
	TelegramAPIURL string
	OwnerID        int64
	DownloadDir    string
	CookiesPath    string
	MaxWorkers     int
	DrainTimeout   time.Duration
}

func Load() *Config {
	return &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		TelegramAPIURL: os.Getenv("TELEGRAM_API_URL"),
		OwnerID:        getInt64("OWNER_ID", 0),
		DownloadDir:    getString("DOWNLOAD_DIR", "downloads"),
		CookiesPath:    getString("YTDLP_COOKIES", "cookies/nimbus.txt"),
		MaxWorkers:     getInt("MAX_WORKERS", 8),
		DrainTimeout:   time.Duration(getInt("DRAIN_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
