// Package decoder turns raw push payloads into typed events.
package decoder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imasse-dev/browser-ios/internal/domain"
	"github.com/imasse-dev/browser-ios/internal/profile"
)

// Decoder resolves one raw payload into a PushEvent. Implementations must be
// safe to invoke once per payload; they either complete (event or error) or
// run until the caller's deadline absorbs them.
type Decoder interface {
	Decode(ctx context.Context, payload map[string]string, prof profile.Profile) (domain.PushEvent, error)
}

const (
	commandReceived        = "fxaccounts:command_received"
	commandDeviceConnected = "fxaccounts:device_connected"
	commandDeviceGone      = "fxaccounts:device_disconnected"
	commandAccountVerified = "fxaccounts:account_verified"
)

type envelope struct {
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data"`
}

// CommandDecoder decodes the JSON command envelope carried in the payload
// body. Commands outside the known set decode to Unrecognized, never to an
// error, so the presenter stays total.
type CommandDecoder struct{}

func NewCommandDecoder() *CommandDecoder {
	return &CommandDecoder{}
}

func (d *CommandDecoder) Decode(ctx context.Context, payload map[string]string, prof profile.Profile) (domain.PushEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, ok := payload["body"]
	if !ok || body == "" {
		return nil, fmt.Errorf("payload has no body")
	}

	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, fmt.Errorf("unmarshal payload body: %w", err)
	}

	switch env.Command {
	case commandReceived:
		var tab map[string]string
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &tab); err != nil {
				return nil, fmt.Errorf("unmarshal tab command: %w", err)
			}
		}
		if tab == nil {
			tab = map[string]string{}
		}
		return domain.CommandReceived{Tab: tab}, nil

	case commandDeviceConnected:
		var data struct {
			DeviceID   string `json:"deviceId"`
			DeviceName string `json:"deviceName"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("unmarshal device connected: %w", err)
		}
		// Keep the registry fresh so a later disconnect can name the device.
		_ = prof.RememberDevice(data.DeviceID, data.DeviceName)
		return domain.DeviceConnected{DeviceName: data.DeviceName}, nil

	case commandDeviceGone:
		var data struct {
			DeviceID      string `json:"deviceId"`
			IsLocalDevice bool   `json:"isLocalDevice"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("unmarshal device disconnected: %w", err)
		}
		if data.IsLocalDevice {
			return domain.ThisDeviceDisconnected{}, nil
		}
		var name *string
		if n, ok := prof.DeviceName(data.DeviceID); ok {
			name = &n
		}
		return domain.DeviceDisconnected{DeviceName: name}, nil

	case commandAccountVerified:
		return domain.AccountVerified{}, nil

	default:
		return domain.Unrecognized{Description: fmt.Sprintf("command %q", env.Command)}, nil
	}
}
