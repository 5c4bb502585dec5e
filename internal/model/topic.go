package model

var (
	EventRewardClaimedTopic = "EVENT_REWARD_CLAIMED"
)

type EventRewardClaimedMessage struct {
	HistoryID string   `json:"history_id"`
	EventID   string   `json:"event_id"`
	UserID    string   `json:"user_id"`
	Rewards   []Reward `json:"rewards"`
	ClaimedAt string   `json:"claimed_at"`
}
