package model

import "time"

type ClaimEventRewardsRequest struct {
	EventID string `json:"event_id"`
}

type ClaimEventRewardsResponse struct {
	HistoryID string  `json:"history_id"`
	Balance   Balance `json:"balance"`
}

const (
	ClaimHistoryFilterAll              = "ALL"
	ClaimHistoryFilterEventID          = "EVENT_ID"
	ClaimHistoryFilterUserID           = "USER_ID"
	ClaimHistoryFilterEventIDAndUserID = "EVENT_ID_AND_USER_ID"
)

type GetClaimHistoriesRequest struct {
	Filter  string    `json:"filter"`
	EventID string    `json:"event_id"`
	UserID  string    `json:"user_id"`
	TimeAt  time.Time `json:"time_at"`
	Limit   int       `json:"limit"`
}

type GetClaimHistoriesResponse struct {
	Histories []ClaimHistory `json:"histories"`
}
