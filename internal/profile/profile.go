// Package profile holds the stateful session resource a payload decode needs.
// A profile is constructed lazily per payload, marked when activity occurs,
// and shut down unconditionally once the payload is finished.
package profile

// Profile is the lifecycle resource owned by one delivery for one payload.
type Profile interface {
	// RecordActivity marks that the account saw activity.
	RecordActivity() error
	// DeviceName resolves a device ID against the device registry.
	DeviceName(deviceID string) (string, bool)
	// RememberDevice records or refreshes a registry entry.
	RememberDevice(deviceID, name string) error
	// Shutdown releases the resource. Must be called on every exit path.
	Shutdown() error
}
