package store

import "time"

type Report struct {
	ID            string
	ParticipantID string
	Quarter       int
	Year          int
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Label         string
	InitialCount  int
	CurrentCount  int
	ReturnTarget  int
	Died          int
	Born          int
	Sold          int
	Notes         string
	Obstacle      string
	Solution      string
	ReportDate    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
