package decoder

import (
	"context"
	"testing"

	"github.com/imasse-dev/browser-ios/internal/domain"
)

type memProfile struct {
	devices  map[string]string
	recorded []string
}

func newMemProfile() *memProfile {
	return &memProfile{devices: map[string]string{}}
}

func (p *memProfile) RecordActivity() error { return nil }

func (p *memProfile) DeviceName(deviceID string) (string, bool) {
	name, ok := p.devices[deviceID]
	return name, ok
}

func (p *memProfile) RememberDevice(deviceID, name string) error {
	p.devices[deviceID] = name
	p.recorded = append(p.recorded, deviceID)
	return nil
}

func (p *memProfile) Shutdown() error { return nil }

func decode(t *testing.T, body string, prof *memProfile) (domain.PushEvent, error) {
	t.Helper()
	d := NewCommandDecoder()
	return d.Decode(context.Background(), map[string]string{"body": body}, prof)
}

func TestDecodeTabCommand(t *testing.T) {
	event, err := decode(t,
		`{"command":"fxaccounts:command_received","data":{"url":"https://example.com","title":"Example","deviceName":"Desk Mac"}}`,
		newMemProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd, ok := event.(domain.CommandReceived)
	if !ok {
		t.Fatalf("expected CommandReceived, got %T", event)
	}
	if cmd.Tab["url"] != "https://example.com" || cmd.Tab["title"] != "Example" {
		t.Errorf("tab mismatch: %v", cmd.Tab)
	}
	if cmd.Tab["deviceName"] != "Desk Mac" {
		t.Errorf("expected deviceName carried through, got %v", cmd.Tab)
	}
}

func TestDecodeTabCommandWithoutData(t *testing.T) {
	event, err := decode(t, `{"command":"fxaccounts:command_received"}`, newMemProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd, ok := event.(domain.CommandReceived)
	if !ok {
		t.Fatalf("expected CommandReceived, got %T", event)
	}
	if cmd.Tab == nil {
		t.Error("tab map must not be nil")
	}
}

func TestDecodeDeviceConnected(t *testing.T) {
	prof := newMemProfile()
	event, err := decode(t,
		`{"command":"fxaccounts:device_connected","data":{"deviceId":"dev-1","deviceName":"Pixel 8"}}`,
		prof)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	conn, ok := event.(domain.DeviceConnected)
	if !ok {
		t.Fatalf("expected DeviceConnected, got %T", event)
	}
	if conn.DeviceName != "Pixel 8" {
		t.Errorf("unexpected device name %q", conn.DeviceName)
	}
	if name, ok := prof.DeviceName("dev-1"); !ok || name != "Pixel 8" {
		t.Errorf("expected device remembered in registry, got %q/%v", name, ok)
	}
}

func TestDecodeDeviceDisconnected(t *testing.T) {
	t.Run("known device", func(t *testing.T) {
		prof := newMemProfile()
		prof.devices["dev-1"] = "Pixel 8"
		event, err := decode(t,
			`{"command":"fxaccounts:device_disconnected","data":{"deviceId":"dev-1"}}`, prof)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		gone, ok := event.(domain.DeviceDisconnected)
		if !ok {
			t.Fatalf("expected DeviceDisconnected, got %T", event)
		}
		if gone.DeviceName == nil || *gone.DeviceName != "Pixel 8" {
			t.Errorf("expected resolved device name, got %v", gone.DeviceName)
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		event, err := decode(t,
			`{"command":"fxaccounts:device_disconnected","data":{"deviceId":"nope"}}`, newMemProfile())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		gone, ok := event.(domain.DeviceDisconnected)
		if !ok {
			t.Fatalf("expected DeviceDisconnected, got %T", event)
		}
		if gone.DeviceName != nil {
			t.Errorf("expected nil device name, got %q", *gone.DeviceName)
		}
	})

	t.Run("local device", func(t *testing.T) {
		event, err := decode(t,
			`{"command":"fxaccounts:device_disconnected","data":{"deviceId":"dev-1","isLocalDevice":true}}`,
			newMemProfile())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := event.(domain.ThisDeviceDisconnected); !ok {
			t.Fatalf("expected ThisDeviceDisconnected, got %T", event)
		}
	})
}

func TestDecodeAccountVerified(t *testing.T) {
	event, err := decode(t, `{"command":"fxaccounts:account_verified","data":{}}`, newMemProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := event.(domain.AccountVerified); !ok {
		t.Fatalf("expected AccountVerified, got %T", event)
	}
}

func TestDecodeUnknownCommandIsUnrecognized(t *testing.T) {
	event, err := decode(t, `{"command":"fxaccounts:collection_changed","data":{}}`, newMemProfile())
	if err != nil {
		t.Fatalf("unknown commands must not fail decode: %v", err)
	}
	unrec, ok := event.(domain.Unrecognized)
	if !ok {
		t.Fatalf("expected Unrecognized, got %T", event)
	}
	if unrec.Description == "" {
		t.Error("expected a debug description")
	}
}

func TestDecodeErrors(t *testing.T) {
	d := NewCommandDecoder()
	prof := newMemProfile()

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"no body", map[string]string{"chid": "abc"}},
		{"empty body", map[string]string{"body": ""}},
		{"malformed json", map[string]string{"body": "{not json"}},
		{"malformed data", map[string]string{"body": `{"command":"fxaccounts:device_connected","data":"nope"}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := d.Decode(context.Background(), tc.payload, prof); err == nil {
				t.Error("expected a decode error")
			}
		})
	}
}

func TestDecodeHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewCommandDecoder()
	if _, err := d.Decode(ctx, map[string]string{"body": "{}"}, newMemProfile()); err == nil {
		t.Error("expected error from cancelled context")
	}
}
