package domain

import "time"

// Field names used in validation errors. They match the JSON keys exposed by the API.
const (
	FieldFullName          = "nama_lengkap"
	FieldNIK               = "nik"
	FieldAddress           = "alamat"
	FieldPhone             = "no_hp"
	FieldGender            = "jenis_kelamin"
	FieldCycleStatus       = "status_siklus"
	FieldEnrolledAt        = "tanggal_bergabung"
	FieldInitialCount      = "jumlah_awal"
	FieldReturnTarget      = "target_pengembalian"
	FieldPerformanceStatus = "status_kinerja"
)

// Participant is a farmer (peternak) enrolled in the livestock loan program.
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

// ParticipantInput carries registration data. CurrentCount is accepted from
// callers but never stored on the participant; headcounts live on reports.
type ParticipantInput struct {
	FullName          string
	NIK               string
	Address           string
	Phone             string
	Gender            string
	CycleStatus       string
	PerformanceStatus string
	EnrolledAt        time.Time
	InitialCount      *int
	ReturnTarget      *int
	CurrentCount      *int
}

// ParticipantPatch is a partial update. Nil fields are left untouched.
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
}

// IsEmpty reports whether the patch changes nothing.
func (p ParticipantPatch) IsEmpty() bool {
	return p.FullName == nil && p.NIK == nil && p.Address == nil && p.Phone == nil &&
		p.Gender == nil && p.CycleStatus == nil && p.PerformanceStatus == nil &&
		p.EnrolledAt == nil && p.InitialCount == nil && p.ReturnTarget == nil
}
