// Package pushclient maintains the autopush websocket session and feeds each
// incoming push into the delivery pipeline.
package pushclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/imasse-dev/browser-ios/internal/domain"
	"github.com/imasse-dev/browser-ios/internal/logger"
)

// Deliverer consumes one raw payload per incoming push.
type Deliverer interface {
	Handle(ctx context.Context, payload map[string]string)
}

type Client struct {
	conn  *websocket.Conn
	mutex sync.Mutex
	stop  chan struct{}

	config      *domain.Config
	configMutex *sync.RWMutex
	saveConfig  func() error
	deliver     Deliverer
	log         *logger.Logger
}

func New(
	cfg *domain.Config,
	cfgMutex *sync.RWMutex,
	saveConfig func() error,
	deliver Deliverer,
	log *logger.Logger,
) *Client {
	return &Client{
		stop:        make(chan struct{}),
		config:      cfg,
		configMutex: cfgMutex,
		saveConfig:  saveConfig,
		deliver:     deliver,
		log:         log.WithComponent("pushclient"),
	}
}

func (c *Client) Start() {
	go func() {
		for {
			select {
			case <-c.stop:
				c.closeConn()
				return
			default:
			}

			if err := c.dial(); err != nil {
				c.log.Warn("dial failed", slog.String("error", err.Error()))
				time.Sleep(5 * time.Second)
				continue
			}

			if err := c.sendHello(); err != nil {
				c.closeConn()
				time.Sleep(5 * time.Second)
				continue
			}

			sessionDone := make(chan struct{})
			keepAliveDone := make(chan struct{})
			go func() {
				defer close(keepAliveDone)
				c.keepAliveLoop(sessionDone)
			}()

			c.readLoop()

			close(sessionDone)
			<-keepAliveDone

			c.log.Info("connection lost, reconnecting in 5s")
			c.closeConn()
			time.Sleep(5 * time.Second)
		}
	}()
}

func (c *Client) Stop() {
	close(c.stop)
	c.closeConn()
}

func (c *Client) dial() error {
	c.configMutex.RLock()
	endpoint := c.config.Push.Endpoint
	c.configMutex.RUnlock()

	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return err
	}
	conn.SetPongHandler(func(appData string) error { return nil })

	c.mutex.Lock()
	c.conn = conn
	c.mutex.Unlock()
	return nil
}

func (c *Client) closeConn() {
	c.mutex.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mutex.Unlock()
}

func (c *Client) sendHello() error {
	c.configMutex.RLock()
	uaid := c.config.Push.UAID
	channelID := c.config.Push.ChannelID
	c.configMutex.RUnlock()

	hello := domain.HelloRequest{
		Type:       domain.MessageTypeHello,
		UseWebPush: true,
	}
	if uaid != "" {
		hello.UAID = uaid
		if channelID != "" {
			hello.ChannelIDs = []string{channelID}
		}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.conn == nil {
		return fmt.Errorf("no connection")
	}
	return c.conn.WriteJSON(hello)
}

// register requests a fresh push channel when the config has none yet.
func (c *Client) register() error {
	channelID := uuid.New().String()
	reg := domain.RegisterMessage{
		MessageType: string(domain.MessageTypeRegister),
		ChannelID:   channelID,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.conn == nil {
		return fmt.Errorf("no connection")
	}
	return c.conn.WriteJSON(reg)
}

func (c *Client) readLoop() {
	for {
		c.mutex.Lock()
		conn := c.conn
		c.mutex.Unlock()
		if conn == nil {
			return
		}

		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			c.log.Warn("read error", slog.String("error", err.Error()))
			return
		}

		var typeCheck struct {
			MessageType string `json:"messageType"`
		}
		if json.Unmarshal(msgBytes, &typeCheck) != nil {
			continue
		}

		switch domain.MessageType(typeCheck.MessageType) {
		case domain.MessageTypeHello:
			var resp domain.HelloResponse
			if json.Unmarshal(msgBytes, &resp) == nil {
				c.handleHello(resp)
			}
		case domain.MessageTypeRegister:
			var resp domain.RegisterResponse
			if json.Unmarshal(msgBytes, &resp) == nil {
				c.handleRegister(resp)
			}
		case domain.MessageTypeNotification:
			var nm domain.NotificationMessage
			if json.Unmarshal(msgBytes, &nm) == nil {
				c.handleNotification(nm)
			}
		}
	}
}

func (c *Client) handleHello(resp domain.HelloResponse) {
	if resp.UAID != "" {
		c.configMutex.Lock()
		if c.config.Push.UAID != resp.UAID {
			c.config.Push.UAID = resp.UAID
			_ = c.saveConfig()
			c.log.Info("saved UAID", slog.String("uaid", resp.UAID))
		}
		channelID := c.config.Push.ChannelID
		c.configMutex.Unlock()

		if channelID == "" {
			if err := c.register(); err != nil {
				c.log.Warn("register failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (c *Client) handleRegister(resp domain.RegisterResponse) {
	if resp.Status != 200 {
		c.log.Warn("register rejected", slog.Int("status", resp.Status))
		return
	}
	c.configMutex.Lock()
	c.config.Push.ChannelID = resp.ChannelID
	_ = c.saveConfig()
	c.configMutex.Unlock()
	c.log.Info("registered push channel",
		slog.String("channel_id", resp.ChannelID),
		slog.String("endpoint", resp.PushEndpoint))
}

// handleNotification flattens the wire message into the opaque payload map
// the pipeline consumes, runs the delivery, then acks so the relay stops
// redelivering.
func (c *Client) handleNotification(nm domain.NotificationMessage) {
	payload := map[string]string{
		"body": nm.Data,
		"chid": nm.ChannelID,
		"ver":  nm.Version,
	}
	for k, v := range nm.Headers {
		if _, taken := payload[k]; !taken {
			payload[k] = v
		}
	}

	c.deliver.Handle(context.Background(), payload)
	c.ack(nm.ChannelID, nm.Version)
}

func (c *Client) ack(channelID, version string) {
	ack := domain.AckMessage{
		MessageType: string(domain.MessageTypeAck),
		Updates:     []domain.AckUpdate{{ChannelID: channelID, Version: version}},
	}
	c.mutex.Lock()
	if c.conn != nil {
		_ = c.conn.WriteJSON(ack)
	}
	c.mutex.Unlock()
}

func (c *Client) keepAliveLoop(sessionDone <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			if c.conn == nil {
				c.mutex.Unlock()
				return
			}
			err := c.conn.WriteJSON(map[string]interface{}{})
			c.mutex.Unlock()
			if err != nil {
				return
			}
		case <-sessionDone:
			return
		case <-c.stop:
			return
		}
	}
}
