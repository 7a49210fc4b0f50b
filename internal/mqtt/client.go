package mqtt

import (
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/services"
)

// Client wraps the MQTT client with the per-device snapshot
// subscriptions that feed the record store. Each configured device has
// a retained snapshot topic carrying that device's full current raw
// record set; every publish on it re-delivers the whole snapshot, and
// the merge replaces the device's history in full.
type Client struct {
	client        mqtt.Client
	merger        *services.SnapshotMerger
	devices       []models.Device
	topicPrefix   string
	updateHandler func(models.Device, models.Record)
	errorHandler  func(error)
	isConnected   bool
}

// Config holds MQTT connection configuration.
type Config struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	KeepAlive   time.Duration
	PingTimeout time.Duration
	TopicPrefix string
}

// DefaultConfig returns default MQTT configuration.
func DefaultConfig() *Config {
	return &Config{
		BrokerURL:   "tcp://localhost:1883",
		ClientID:    "penyiraman_dashboard",
		KeepAlive:   30 * time.Second,
		PingTimeout: 10 * time.Second,
		TopicPrefix: "irrigation",
	}
}

// NewClient creates a new MQTT client subscribing on behalf of the
// configured device registry and merging into the given store.
func NewClient(config *Config, devices []models.Device, merger *services.SnapshotMerger) *Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.BrokerURL)
	opts.SetClientID(config.ClientID)
	opts.SetKeepAlive(config.KeepAlive)
	opts.SetPingTimeout(config.PingTimeout)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)

	if config.Username != "" {
		opts.SetUsername(config.Username)
	}
	if config.Password != "" {
		opts.SetPassword(config.Password)
	}

	client := &Client{
		merger:      merger,
		devices:     devices,
		topicPrefix: config.TopicPrefix,
	}

	opts.SetOnConnectHandler(client.onConnect)
	opts.SetConnectionLostHandler(client.onConnectionLost)

	client.client = mqtt.NewClient(opts)

	return client
}

// Connect establishes connection to the MQTT broker.
func (c *Client) Connect() error {
	log.Println("Connecting to MQTT broker...")

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Println("Successfully connected to MQTT broker")
	c.isConnected = true
	return nil
}

// Disconnect closes the MQTT connection.
func (c *Client) Disconnect() {
	if c.isConnected {
		c.client.Disconnect(250)
		c.isConnected = false
		log.Println("Disconnected from MQTT broker")
	}
}

// IsConnected returns the connection status.
func (c *Client) IsConnected() bool {
	return c.isConnected && c.client.IsConnected()
}

// SubscribeToSnapshots opens one snapshot subscription per configured
// device. The retained message on each topic delivers the current
// snapshot immediately on subscribe, then again on every change.
func (c *Client) SubscribeToSnapshots() error {
	for _, device := range c.devices {
		device := device
		topic := c.SnapshotTopic(device.ID)

		handler := func(client mqtt.Client, msg mqtt.Message) {
			c.handleSnapshot(device, msg.Payload())
		}

		if token := c.client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
		}
		log.Printf("Subscribed to snapshot topic: %s", topic)
	}

	return nil
}

// SnapshotTopic returns the snapshot topic for one device.
func (c *Client) SnapshotTopic(deviceID string) string {
	return fmt.Sprintf("%s/%s/snapshot", c.topicPrefix, deviceID)
}

// SetUpdateHandler sets the callback invoked after each merged
// snapshot with the device's new latest record.
func (c *Client) SetUpdateHandler(handler func(models.Device, models.Record)) {
	c.updateHandler = handler
}

// SetErrorHandler sets the callback function for errors.
func (c *Client) SetErrorHandler(handler func(error)) {
	c.errorHandler = handler
}

// handleSnapshot merges one delivered snapshot payload. Empty payloads
// mean "nothing yet" and are skipped; decode failures are reported but
// never interrupt the subscription.
func (c *Client) handleSnapshot(device models.Device, payload []byte) {
	latest, merged, err := c.merger.MergeJSON(device, payload)
	if err != nil {
		log.Printf("Failed to process snapshot for device %s: %v", device.ID, err)
		if c.errorHandler != nil {
			c.errorHandler(err)
		}
		return
	}
	if !merged {
		log.Printf("Empty snapshot for device %s, keeping prior state", device.ID)
		return
	}

	log.Printf("Merged snapshot for device %s (%s), latest reading at %s",
		device.ID, device.Name, latest.DateTime)

	if c.updateHandler != nil {
		c.updateHandler(device, latest)
	}
}

// PublishSnapshot publishes a retained snapshot payload for a device.
// Used by the simulator utility and integration tooling.
func (c *Client) PublishSnapshot(deviceID string, payload []byte) error {
	topic := c.SnapshotTopic(deviceID)

	if token := c.client.Publish(topic, 1, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish snapshot: %w", token.Error())
	}

	log.Printf("Published snapshot to %s (%d bytes)", topic, len(payload))
	return nil
}

// onConnect callback when connection is established.
func (c *Client) onConnect(client mqtt.Client) {
	log.Println("MQTT client connected")
	c.isConnected = true
}

// onConnectionLost callback when connection is lost.
func (c *Client) onConnectionLost(client mqtt.Client, connErr error) {
	log.Printf("MQTT connection lost: %v", connErr)
	c.isConnected = false

	if c.errorHandler != nil {
		c.errorHandler(fmt.Errorf("MQTT connection lost: %w", connErr))
	}
}
