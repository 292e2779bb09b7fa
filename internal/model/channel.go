package model

// ChannelRecord is joined channel metadata, keyed by channel ID. Fetched at
// most once per unique channel per run.
type ChannelRecord struct {
	ChannelID       string `json:"channelId"`
	Title           string `json:"title,omitempty"`
	SubscriberCount *int64 `json:"subscriberCount"` // nil when the channel hides the count
	Country         string `json:"country,omitempty"` // ISO-2, "" when unset
	AvatarURL       string `json:"avatarUrl,omitempty"`
}
