package domain

// ParticipantSummary aggregates the report history of one participant.
type ParticipantSummary struct {
	ParticipantID string
	FullName      string
	ReportCount   int
	LatestQuarter int
	InitialCount  int
	CurrentCount  int
	ReturnTarget  int
	Completed     bool
}

// ProgramSummary is the program-wide view rendered by the CLI.
type ProgramSummary struct {
	Title        string
	Participants []ParticipantSummary
	TotalInitial int
	TotalCurrent int
	Completed    int
}
