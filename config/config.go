package config

import (
	"os"
	"strings"
	"time"

	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
)

// Config holds all configuration for the irrigation dashboard backend.
type Config struct {
	Server  ServerConfig
	MQTT    MQTTConfig
	Devices []models.Device
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MQTTConfig holds MQTT broker configuration.
type MQTTConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	KeepAlive   time.Duration
	PingTimeout time.Duration
	TopicPrefix string
}

// defaultDevices is the field deployment this dashboard was built for.
// Overridable via the DEVICES environment variable.
var defaultDevices = []models.Device{
	{ID: "vU2AHfvDz4TUo700miJjZ2LuGDK2", Name: "Sprinkler Irrigation"},
	{ID: "gGuzIhBcpJbUfZGEXSEKxf2Alnr2", Name: "Subsurface Drip Irrigation"},
}

// Load loads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		MQTT: MQTTConfig{
			BrokerURL:   getMQTTBrokerURL(),
			ClientID:    getEnv("MQTT_CLIENT_ID", "penyiraman_dashboard"),
			Username:    getEnv("MQTT_USERNAME", ""),
			Password:    getEnv("MQTT_PASSWORD", ""),
			KeepAlive:   getDurationEnv("MQTT_KEEP_ALIVE", 30*time.Second),
			PingTimeout: getDurationEnv("MQTT_PING_TIMEOUT", 10*time.Second),
			TopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "irrigation"),
		},
		Devices: parseDevices(getEnv("DEVICES", "")),
	}
}

// parseDevices parses the DEVICES environment variable, a comma
// separated list of id=name pairs. An empty or fully malformed value
// falls back to the default field deployment.
func parseDevices(raw string) []models.Device {
	if raw == "" {
		return defaultDevices
	}

	var devices []models.Device
	for _, pair := range strings.Split(raw, ",") {
		id, name, found := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if !found || id == "" || name == "" {
			continue
		}
		devices = append(devices, models.Device{ID: id, Name: name})
	}

	if len(devices) == 0 {
		return defaultDevices
	}
	return devices
}

// getEnv returns environment variable value or default if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv returns duration environment variable value or default if not set.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getMQTTBrokerURL returns MQTT broker URL with tcp:// prefix if not present.
// Supports both "localhost:1883" and "tcp://localhost:1883" formats.
func getMQTTBrokerURL() string {
	broker := getEnv("MQTT_BROKER", getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"))

	if broker != "" && !strings.HasPrefix(broker, "tcp:") && !strings.HasPrefix(broker, "ssl") {
		return "tcp://" + broker
	}
	return broker
}
