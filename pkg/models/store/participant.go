package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Participant struct {
	ID                string
	FullName          string
	NIK               string
	Address           string
	Phone             string
	Gender            string
	CycleStatus       string
	PerformanceStatus string
	EnrolledAt        time.Time
	InitialCount      int
	ReturnTarget      int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ParticipantPatch lists the columns to overwrite. Nil fields are skipped.
type ParticipantPatch struct {
	FullName          *string
	NIK               *string
	Address           *string
	Phone             *string
	Gender            *string
	CycleStatus       *string
	PerformanceStatus *string
	EnrolledAt        *time.Time
	InitialCount      *int
	ReturnTarget      *int
	UpdatedAt         time.Time
}
