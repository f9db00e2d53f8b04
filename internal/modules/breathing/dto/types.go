package dto

import "time"

type GuideInput struct {
	Cycles int
	Period time.Duration
}

type StepOutput struct {
	Counter   int    `json:"counter"`
	Phase     string `json:"phase"`
	Countdown int    `json:"countdown"`
	Label     string `json:"label"`
}
