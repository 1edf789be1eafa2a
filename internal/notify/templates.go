package notify

const (
	titleTabArrived         = "New tab received"
	titleDeviceConnected    = "Account connected"
	titleDeviceDisconnected = "Account disconnected"
	titleThisDeviceGone     = "Signed out"
	titleAccountVerified    = "Account verified"
	titleFallback           = "Notification"

	bodyDeviceConnected      = "%s is now syncing to your account"
	bodyDeviceDisconnected   = "%s is no longer syncing to your account"
	bodyUnknownDeviceGone    = "A device is no longer syncing to your account"
	bodyThisDeviceGone       = "This device is no longer syncing to your account"
	bodyAccountVerified      = "Your account is ready to sync"
	bodyAccountVerifiedDebug = "Account verified (no further payload data)"
	bodyFallbackProduction   = "You don't have any new tabs"
)
