package model

import "time"

type CreateEventRequest struct {
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	IsPublic    bool       `json:"is_public"`
	Challenge   *Challenge `json:"challenge"`
	Rewards     []Reward   `json:"rewards"`
	RewardLimit *int64     `json:"reward_limit"`
}

type CreateEventResponse struct {
	ID string `json:"id"`
}

type GetEventRequest struct {
	ID string `json:"id"`
}

type GetEventResponse struct {
	Event Event `json:"event"`
}

type GetListEventRequest struct {
	StartDate time.Time `json:"start_date"`
	Count     int       `json:"count"`
}

type GetListEventResponse struct {
	Events []Event `json:"events"`
}

type GetEventRewardsRequest struct {
	ID string `json:"id"`
}

type GetEventRewardsResponse struct {
	Rewards     []Reward `json:"rewards"`
	RewardLimit *int64   `json:"reward_limit,omitempty"`
}

type UpdateEventRewardsRequest struct {
	ID          string   `json:"id"`
	Rewards     []Reward `json:"rewards"`
	RewardLimit *int64   `json:"reward_limit"`
}

type UpdateEventRewardsResponse struct{}
