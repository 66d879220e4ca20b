package dto

// StatisticsDTO is the dashboard summary of the triage queue.
type StatisticsDTO struct {
	Total      int64 `json:"total"`
	Incoming   int64 `json:"incoming"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Critical   int64 `json:"critical"`
	OnlineTeam int64 `json:"onlineTeam"`
}
