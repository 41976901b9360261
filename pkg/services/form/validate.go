package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
)

// FormErrorKey holds errors that belong to no single field.
const FormErrorKey = "_form"

const (
	FieldObstacle = "kendala"
	FieldSolution = "solusi"
	FieldNotes    = "catatan"
)

const dateLayout = "2006-01-02"

const (
	msgRequired    = "wajib diisi"
	msgNonNegative = "harus berupa bilangan bulat tidak negatif"
	msgDateFormat  = "format tanggal harus YYYY-MM-DD"
	msgFutureDate  = "tanggal laporan tidak boleh melebihi hari ini"
)

// DeriveCurrent computes initial + born - died - sold, floored at zero.
// Inputs that do not parse count as zero.
func DeriveCurrent(v Values) int {
	return domain.CurrentCount(intOrZero(v.Initial), intOrZero(v.Born), intOrZero(v.Died), intOrZero(v.Sold))
}

// Validate checks every rule and returns field -> message. An empty map
// means the form is valid.
func Validate(v Values, now time.Time) map[string]string {
	errs := map[string]string{}

	counts := []struct {
		field string
		raw   string
	}{
		{domain.FieldInitialCount, v.Initial},
		{domain.FieldBorn, v.Born},
		{domain.FieldDied, v.Died},
		{domain.FieldSold, v.Sold},
	}
	parsed := make(map[string]int, len(counts))
	for _, c := range counts {
		n, msg := parseCount(c.raw)
		if msg != "" {
			errs[c.field] = msg
			continue
		}
		parsed[c.field] = n
	}

	initial, okInitial := parsed[domain.FieldInitialCount]
	died, okDied := parsed[domain.FieldDied]
	sold, okSold := parsed[domain.FieldSold]
	if okInitial && okDied && okSold && died+sold > initial {
		errs[FormErrorKey] = domain.ErrMsgDiedSoldExceedInitial
	}

	if strings.TrimSpace(v.ReportDate) == "" {
		errs[domain.FieldReportDate] = msgRequired
	} else if d, err := parseDate(v.ReportDate); err != nil {
		errs[domain.FieldReportDate] = msgDateFormat
	} else if domain.AfterToday(d, now) {
		errs[domain.FieldReportDate] = msgFutureDate
	}

	return errs
}

func parseCount(raw string) (int, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, msgRequired
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, msgNonNegative
	}
	return n, ""
}

func intOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
