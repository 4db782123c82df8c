// Package config загружает настройки сервиса: .env, необязательный TOML-файл и переменные окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения.
type Config struct {
	Discord    DiscordConfig    `toml:"discord"`
	Management ManagementConfig `toml:"management"`
	Paste      PasteConfig      `toml:"paste"`
	Roles      RolesConfig      `toml:"roles"`
	Channels   ChannelsConfig   `toml:"channels"`
	Server     ServerConfig     `toml:"server"`
}

// DiscordConfig содержит параметры подключения к платформе.
type DiscordConfig struct {
	Token   string `toml:"token"`
	AppID   string `toml:"app_id"`
	GuildID string `toml:"guild_id"`
}

// ManagementConfig содержит параметры API управления код-джемом.
type ManagementConfig struct {
	URL     string   `toml:"url"`
	Token   string   `toml:"token"`
	Timeout Duration `toml:"timeout"`
}

// PasteConfig содержит адрес сервиса вставок. Пустой адрес отключает отправку.
type PasteConfig struct {
	URL string `toml:"url"`
}

// RolesConfig содержит роли, которые использует бот.
type RolesConfig struct {
	Admins       []string `toml:"admins"`
	EventTeam    string   `toml:"event_team"`
	Participants string   `toml:"participants"`
}

// ChannelsConfig содержит каналы, которые использует бот.
type ChannelsConfig struct {
	Announcements string `toml:"announcements"`
}

// ServerConfig содержит параметры служебного HTTP-сервера.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration позволяет записывать интервалы в TOML строкой вида "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText реализует encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		Management: ManagementConfig{Timeout: Duration{10 * time.Second}},
		Server:     ServerConfig{Addr: ":8080"},
	}
}

// Load читает .env (если есть), файл из CODEJAM_CONFIG (если задан) и переменные окружения.
// Переменные окружения имеют приоритет над файлом.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CODEJAM_CONFIG"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile дополняет cfg значениями из TOML-файла.
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Discord.Token, "DISCORD_TOKEN")
	setString(&cfg.Discord.AppID, "DISCORD_APP_ID")
	setString(&cfg.Discord.GuildID, "GUILD_ID")
	setString(&cfg.Management.URL, "MGMT_API_URL")
	setString(&cfg.Management.Token, "MGMT_API_TOKEN")
	setString(&cfg.Paste.URL, "PASTE_URL")
	setString(&cfg.Roles.EventTeam, "EVENT_TEAM_ROLE_ID")
	setString(&cfg.Roles.Participants, "PARTICIPANTS_ROLE_ID")
	setString(&cfg.Channels.Announcements, "ANNOUNCEMENTS_CHANNEL_ID")
	setString(&cfg.Server.Addr, "SERVER_ADDR")

	if v := os.Getenv("ADMIN_ROLE_IDS"); v != "" {
		cfg.Roles.Admins = splitList(v)
	}
	if v := os.Getenv("MGMT_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MGMT_API_TIMEOUT: %w", err)
		}
		cfg.Management.Timeout = Duration{d}
	}
	return nil
}

// Validate проверяет обязательные настройки.
func (c *Config) Validate() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("required setting DISCORD_TOKEN is not set"))
	}
	if c.Discord.GuildID == "" {
		errs = append(errs, errors.New("required setting GUILD_ID is not set"))
	}
	if c.Management.URL == "" {
		errs = append(errs, errors.New("required setting MGMT_API_URL is not set"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
