package domain

// PushEvent is the decoded meaning of one incoming push payload. The set is
// closed: decoders map anything outside it to Unrecognized instead of failing,
// so the presenter stays total over every decoder output.
type PushEvent interface {
	pushEvent()
}

// CommandReceived carries a tab sent from another device. Tab holds the raw
// command arguments; "url" and "title" must both be present for the tab to be
// presentable.
type CommandReceived struct {
	Tab map[string]string
}

// DeviceConnected reports a new device joining the account.
type DeviceConnected struct {
	DeviceName string
}

// DeviceDisconnected reports another device leaving the account. DeviceName is
// nil when the device registry has no record of it.
type DeviceDisconnected struct {
	DeviceName *string
}

// ThisDeviceDisconnected reports that this device was signed out remotely.
type ThisDeviceDisconnected struct{}

// AccountVerified reports that the account finished email verification.
type AccountVerified struct{}

// Unrecognized stands in for any command the decoder does not know. The
// description is surfaced in diagnostic builds only.
type Unrecognized struct {
	Description string
}

func (CommandReceived) pushEvent()        {}
func (DeviceConnected) pushEvent()        {}
func (DeviceDisconnected) pushEvent()     {}
func (ThisDeviceDisconnected) pushEvent() {}
func (AccountVerified) pushEvent()        {}
func (Unrecognized) pushEvent()           {}
