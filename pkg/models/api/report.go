package api

import (
	"bytes"
	"encoding/json"
)

type Report struct {
	ID            string `json:"id"`
	ParticipantID string `json:"peternak_id"`
	Quarter       int    `json:"triwulan"`
	Year          int    `json:"tahun"`
	PeriodStart   string `json:"periode_mulai"`
	PeriodEnd     string `json:"periode_selesai"`
	Label         string `json:"label"`
	InitialCount  int    `json:"jumlah_awal"`
	CurrentCount  int    `json:"jumlah_saat_ini"`
	ReturnTarget  int    `json:"target_pengembalian"`
	Died          int    `json:"jumlah_mati"`
	Born          int    `json:"jumlah_lahir"`
	Sold          int    `json:"jumlah_terjual"`
	Notes         string `json:"catatan"`
	Obstacle      string `json:"kendala"`
	Solution      string `json:"solusi"`
	ReportDate    string `json:"tanggal_laporan"`
}

// Count is a count field as typed by the operator. It accepts a JSON string
// or a JSON number and keeps the raw decimal text for form validation.
type Count string

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Count(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Count(n.String())
	return nil
}

// ReportForm is the operator input of a quarterly report. Counts arrive as
// decimal strings, as typed, or as plain JSON numbers.
type ReportForm struct {
	InitialCount Count  `json:"jumlah_awal"`
	Born         Count  `json:"jumlah_lahir"`
	Died         Count  `json:"jumlah_mati"`
	Sold         Count  `json:"jumlah_terjual"`
	ReportDate   string `json:"tanggal_laporan"`
	Obstacle     string `json:"kendala"`
	Solution     string `json:"solusi"`
	Notes        string `json:"catatan"`
}

type QuarterInfo struct {
	Number      int    `json:"triwulan"`
	Year        int    `json:"tahun"`
	Label       string `json:"label"`
	PeriodStart string `json:"periode_mulai"`
	PeriodEnd   string `json:"periode_selesai"`
}

type NextQuarter struct {
	QuarterNumber   int          `json:"quarterNumber"`
	QuarterInfo     *QuarterInfo `json:"quarterInfo"`
	CanCreate       bool         `json:"canCreate"`
	ExistingReports []Report     `json:"existingReports"`
	Prefill         Prefill      `json:"prefill"`
}

type Prefill struct {
	InitialCount int `json:"jumlah_awal"`
	CurrentCount int `json:"jumlah_saat_ini"`
}

type ParticipantSummary struct {
	ParticipantID string `json:"peternak_id"`
	FullName      string `json:"nama_lengkap"`
	ReportCount   int    `json:"jumlah_laporan"`
	LatestQuarter int    `json:"triwulan_terakhir"`
	InitialCount  int    `json:"jumlah_awal"`
	CurrentCount  int    `json:"jumlah_saat_ini"`
	ReturnTarget  int    `json:"target_pengembalian"`
	Completed     bool   `json:"selesai"`
}
