package domain

import "time"

// Report is a persisted validation outcome for a stored flow.
type Report struct {
	ID        string    `json:"id"`
	FlowID    string    `json:"flowId"`
	Result    Result    `json:"result"`
	CheckedAt time.Time `json:"checkedAt"`
}
