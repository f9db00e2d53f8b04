package dto

import "time"

type SessionOutput struct {
	Date            time.Time `json:"date"`
	DurationSeconds int       `json:"duration"`
	Success         bool      `json:"success"`
}

type SummaryOutput struct {
	Streak         int             `json:"streak"`
	Total          int             `json:"total"`
	Successful     int             `json:"successful"`
	WeeklyPercent  float64         `json:"weekly_percent"`
	AverageSeconds int             `json:"average_seconds"`
	AverageClock   string          `json:"average_clock"`
	SuccessRate    float64         `json:"success_rate"`
	Recent         []SessionOutput `json:"recent"`
}
