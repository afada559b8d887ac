package model

// PreferencesInput is a partial preferences document. Nil fields are absent
// and leave the stored value untouched.
type PreferencesInput struct {
	Languages             *[]string `json:"languages"`
	NotificationFrequency *string   `json:"notification_frequency"`
}

// SubscribeRequest is the body of POST /api/subscribe.
type SubscribeRequest struct {
	Email       string            `json:"email"`
	Preferences *PreferencesInput `json:"preferences"`
}

// UnsubscribeRequest is the body of POST /api/unsubscribe.
type UnsubscribeRequest struct {
	Email string `json:"email"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// Response messages.
const (
	MessageSubscribed   = "Successfully subscribed to newsletter"
	MessageUnsubscribed = "Successfully unsubscribed from newsletter"
)

// Merge overwrites the keys present in in. Absent keys keep their value.
func (p Preferences) Merge(in *PreferencesInput) Preferences {
	if in == nil {
		return p
	}
	if in.Languages != nil {
		langs := make([]string, len(*in.Languages))
		copy(langs, *in.Languages)
		p.Languages = langs
	}
	if in.NotificationFrequency != nil {
		p.NotificationFrequency = Frequency(*in.NotificationFrequency)
	}
	return p
}
