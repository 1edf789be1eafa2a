package domain

type MessageType string

const (
	MessageTypeHello        MessageType = "hello"
	MessageTypeRegister     MessageType = "register"
	MessageTypeNotification MessageType = "notification"
	MessageTypeAck          MessageType = "ack"
)

type HelloRequest struct {
	Type       MessageType `json:"messageType"`
	UAID       string      `json:"uaid,omitempty"`
	ChannelIDs []string    `json:"channelIDs,omitempty"`
	UseWebPush bool        `json:"use_webpush,omitempty"`
}

type HelloResponse struct {
	MessageType string `json:"messageType"`
	UAID        string `json:"uaid"`
	Status      int    `json:"status"`
	UseWebPush  bool   `json:"use_webpush"`
}

type RegisterMessage struct {
	MessageType string `json:"messageType"`
	ChannelID   string `json:"channelID"`
}

type RegisterResponse struct {
	MessageType  string `json:"messageType"`
	ChannelID    string `json:"channelID"`
	Status       int    `json:"status"`
	PushEndpoint string `json:"pushEndpoint"`
}

// NotificationMessage is the raw inbound push. Data carries the payload body;
// Headers carry transport metadata. Both are opaque to everything but the
// decoder.
type NotificationMessage struct {
	MessageType string            `json:"messageType"`
	ChannelID   string            `json:"channelID"`
	Version     string            `json:"version"`
	Data        string            `json:"data"`
	Headers     map[string]string `json:"headers"`
}

type AckMessage struct {
	MessageType string      `json:"messageType"`
	Updates     []AckUpdate `json:"updates"`
}

type AckUpdate struct {
	ChannelID string `json:"channelID"`
	Version   string `json:"version"`
}
