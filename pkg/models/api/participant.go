package api

type Participant struct {
	ID                string `json:"id"`
	FullName          string `json:"nama_lengkap"`
	NIK               string `json:"nik"`
	Address           string `json:"alamat"`
	Phone             string `json:"no_hp"`
	Gender            string `json:"jenis_kelamin"`
	CycleStatus       string `json:"status_siklus"`
	PerformanceStatus string `json:"status_kinerja,omitempty"`
	EnrolledAt        string `json:"tanggal_bergabung"`
	InitialCount      int    `json:"jumlah_awal"`
	ReturnTarget      int    `json:"target_pengembalian"`
}

// ParticipantRequest is used for both registration and partial updates.
// Pointer fields distinguish "absent" from zero values.
type ParticipantRequest struct {
	FullName          *string `json:"nama_lengkap"`
	NIK               *string `json:"nik"`
	Address           *string `json:"alamat"`
	Phone             *string `json:"no_hp"`
	Gender            *string `json:"jenis_kelamin"`
	CycleStatus       *string `json:"status_siklus"`
	PerformanceStatus *string `json:"status_kinerja"`
	EnrolledAt        *string `json:"tanggal_bergabung"`
	InitialCount      *int    `json:"jumlah_awal"`
	ReturnTarget      *int    `json:"target_pengembalian"`
	CurrentCount      *int    `json:"jumlah_saat_ini"`
}

type PerformanceStatusRequest struct {
	Status string `json:"status_kinerja"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}
