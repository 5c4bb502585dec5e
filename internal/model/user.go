package model

type CreateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type CreateUserResponse struct {
	ID string `json:"id"`
}

type GetUserSnapshotRequest struct {
	UserID string `json:"user_id"`
}

type GetUserSnapshotResponse struct {
	User UserSnapshot `json:"user"`
}

type GiveRewardsRequest struct {
	UserID  string   `json:"user_id"`
	Rewards []Reward `json:"rewards"`
}

type GiveRewardsResponse struct {
	Balance Balance `json:"balance"`
}

type RecordLoginRequest struct {
	UserID string `json:"user_id"`
}

type RecordLoginResponse struct {
	TodayLoginCount       int `json:"today_login_count"`
	ConsecutiveLoginCount int `json:"consecutive_login_count"`
}

type BanUserRequest struct {
	UserID string `json:"user_id"`
	Until  string `json:"until"`
}

type BanUserResponse struct{}
