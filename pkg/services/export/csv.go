package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
)

var csvHeader = []string{
	"peternak_id", "nama_lengkap", "nik", "triwulan", "tahun", "label",
	"periode_mulai", "periode_selesai", "jumlah_awal", "jumlah_lahir",
	"jumlah_mati", "jumlah_terjual", "jumlah_saat_ini", "target_pengembalian",
	"tanggal_laporan", "kendala", "solusi", "catatan",
}

// WriteCSV writes one row per report. Participant columns are left empty
// for reports whose owner is not in participants.
func WriteCSV(w io.Writer, participants []domain.Participant, reports []domain.Report) error {
	byID := make(map[string]domain.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range reports {
		p := byID[r.ParticipantID]
		record := []string{
			r.ParticipantID,
			p.FullName,
			p.NIK,
			strconv.Itoa(r.Quarter),
			strconv.Itoa(r.Year),
			r.Label,
			formatDate(r.PeriodStart),
			formatDate(r.PeriodEnd),
			strconv.Itoa(r.InitialCount),
			strconv.Itoa(r.Born),
			strconv.Itoa(r.Died),
			strconv.Itoa(r.Sold),
			strconv.Itoa(r.CurrentCount),
			strconv.Itoa(r.ReturnTarget),
			formatDate(r.ReportDate),
			r.Obstacle,
			r.Solution,
			r.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write report %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
