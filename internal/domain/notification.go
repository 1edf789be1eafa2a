package domain

// TabAttachment is the structured record attached to a tab-arrival
// notification so a later tap handler can recover the tab.
type TabAttachment struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	DisplayURL string  `json:"displayURL"`
	DeviceName *string `json:"deviceName"`
}

// NotificationContent is the single outgoing notification buffer for one
// payload. It is written only inside the presenter's present step and never
// mutated after hand-off to the sink.
type NotificationContent struct {
	Title       string
	Body        string
	Attachments []TabAttachment
}
