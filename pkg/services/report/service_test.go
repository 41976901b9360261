package report

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/de-tools/ternak-atlas/pkg/models/store"
	"github.com/de-tools/ternak-atlas/pkg/store/memory"
	"github.com/de-tools/ternak-atlas/pkg/store/participants"
	"github.com/de-tools/ternak-atlas/pkg/store/reports"
	"github.com/de-tools/ternak-atlas/pkg/store/sqldb"
	sqlparticipant "github.com/de-tools/ternak-atlas/pkg/store/sqldb/participant"
	sqlreport "github.com/de-tools/ternak-atlas/pkg/store/sqldb/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	participants participants.Store
	reports      reports.Store
	svc          *DefaultService
}

func setupFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	mem := memory.NewStore()
	return newFixture(t, mem.Participants(), mem.Reports(), opts...)
}

func newFixture(t *testing.T, ps participants.Store, rs reports.Store, opts ...Option) *fixture {
	t.Helper()
	ids := 0
	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("r-%d", ids)
		}),
	}, opts...)

	err := ps.Insert(context.Background(), &store.Participant{
		ID:           "p-1",
		FullName:     "Budi Santoso",
		NIK:          "3201",
		EnrolledAt:   date(2024, 1, 15),
		InitialCount: 10,
		ReturnTarget: 12,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	})
	require.NoError(t, err)

	return &fixture{
		participants: ps,
		reports:      rs,
		svc:          NewService(ps, rs, opts...),
	}
}

func payload(quarter, initial, born, died, sold int) domain.Report {
	return domain.Report{
		ParticipantID: "p-1",
		Quarter:       quarter,
		InitialCount:  initial,
		Born:          born,
		Died:          died,
		Sold:          sold,
		ReturnTarget:  12,
		ReportDate:    date(2024, 7, 1),
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first report fills quarter defaults", func(t *testing.T) {
		f := setupFixture(t)
		in := payload(1, 10, 2, 1, 3)
		in.CurrentCount = 999

		r, err := f.svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "r-1", r.ID)
		assert.Equal(t, 8, r.CurrentCount)
		assert.Equal(t, 2024, r.Year)
		assert.Equal(t, "Triwulan 1 2024", r.Label)
		assert.Equal(t, date(2024, 1, 15), r.PeriodStart)
		assert.Equal(t, date(2024, 7, 10), r.PeriodEnd)
		assert.Equal(t, testNow, r.CreatedAt)
	})

	t.Run("current count floors at zero", func(t *testing.T) {
		f := setupFixture(t)
		r, err := f.svc.Create(ctx, payload(1, 5, 0, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, 0, r.CurrentCount)
	})

	t.Run("quarter must be the next one", func(t *testing.T) {
		f := setupFixture(t)
		_, err := f.svc.Create(ctx, payload(2, 10, 0, 0, 0))
		assert.True(t, domain.IsConflict(err))

		_, err = f.svc.Create(ctx, payload(1, 10, 0, 0, 0))
		require.NoError(t, err)
		_, err = f.svc.Create(ctx, payload(1, 10, 0, 0, 0))
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("cycle complete", func(t *testing.T) {
		f := setupFixture(t)
		for q := 1; q <= domain.MaxQuarters; q++ {
			_, err := f.svc.Create(ctx, payload(q, 10, 0, 0, 0))
			require.NoError(t, err, "quarter %d", q)
		}

		nq, err := f.svc.GetNextAllowedQuarter(ctx, "p-1")
		require.NoError(t, err)
		assert.False(t, nq.CanCreate)

		_, err = f.svc.Create(ctx, payload(9, 10, 0, 0, 0))
		assert.True(t, domain.IsConflict(err))
		assert.EqualError(t, err, cycleCompleteMessage)
	})

	t.Run("died and sold exceed initial", func(t *testing.T) {
		f := setupFixture(t)
		_, err := f.svc.Create(ctx, payload(1, 3, 0, 2, 2))

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, verr.Field)
		assert.Equal(t, domain.ErrMsgDiedSoldExceedInitial, verr.Message)
	})

	t.Run("negative count", func(t *testing.T) {
		f := setupFixture(t)
		_, err := f.svc.Create(ctx, payload(1, 3, -1, 0, 0))

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, domain.FieldBorn, verr.Field)
	})

	t.Run("report date", func(t *testing.T) {
		f := setupFixture(t)

		in := payload(1, 10, 0, 0, 0)
		in.ReportDate = time.Time{}
		_, err := f.svc.Create(ctx, in)
		assert.True(t, domain.IsValidation(err))

		in.ReportDate = date(2024, 7, 11)
		_, err = f.svc.Create(ctx, in)
		assert.True(t, domain.IsValidation(err))

		in.ReportDate = date(2024, 7, 10)
		_, err = f.svc.Create(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("unknown participant", func(t *testing.T) {
		f := setupFixture(t)
		in := payload(1, 10, 0, 0, 0)
		in.ParticipantID = "missing"
		_, err := f.svc.Create(ctx, in)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestService_NextQuarterAndPrefill(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	nq, err := f.svc.GetNextAllowedQuarter(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 1, nq.QuarterNumber)
	assert.True(t, nq.CanCreate)

	first, err := f.svc.Create(ctx, payload(1, 10, 0, 4, 0))
	require.NoError(t, err)

	nq, err = f.svc.GetNextAllowedQuarter(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, nq.QuarterNumber)
	require.NotNil(t, nq.QuarterInfo)
	assert.Equal(t, first.PeriodEnd.AddDate(0, 0, 1), nq.QuarterInfo.PeriodStart)

	p, err := f.participants.Get(ctx, "p-1")
	require.NoError(t, err)
	prefill := f.svc.CalculatePrefillData(LastReport(nq.ExistingReports), &domain.Participant{InitialCount: p.InitialCount})
	assert.Equal(t, 6, prefill.InitialCount)

	_, err = f.svc.GetNextAllowedQuarter(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestService_UpdateDeleteAndList(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	created, err := f.svc.Create(ctx, payload(1, 10, 0, 0, 0))
	require.NoError(t, err)

	edit := payload(5, 10, 3, 1, 0)
	edit.ParticipantID = "p-other"
	edit.Notes = "anak lahir"
	updated, err := f.svc.Update(ctx, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "p-1", updated.ParticipantID)
	assert.Equal(t, 1, updated.Quarter)
	assert.Equal(t, 12, updated.CurrentCount)
	assert.Equal(t, created.Label, updated.Label)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "anak lahir", got.Notes)

	_, err = f.svc.Update(ctx, created.ID, payload(1, 1, 0, 1, 1))
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.Update(ctx, "missing", payload(1, 10, 0, 0, 0))
	assert.True(t, domain.IsNotFound(err))

	list, err := f.svc.ListByParticipant(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	summary, err := f.svc.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Participants, 1)
	assert.Equal(t, 12, summary.TotalCurrent)

	ok, err := f.svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.Delete(ctx, created.ID)
	assert.False(t, ok)
	assert.True(t, domain.IsNotFound(err))
}

func TestService_DeleteKeepsQuartersContiguous(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	ids := make([]string, 0, 3)
	for q := 1; q <= 3; q++ {
		r, err := f.svc.Create(ctx, payload(q, 10, 0, 0, 0))
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	ok, err := f.svc.Delete(ctx, ids[1])
	assert.False(t, ok)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "triwulan 2 tidak dapat dihapus")

	next, err := f.svc.GetNextAllowedQuarter(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 4, next.QuarterNumber)
	assert.True(t, next.CanCreate)

	ok, err = f.svc.Delete(ctx, ids[2])
	require.NoError(t, err)
	assert.True(t, ok)

	next, err = f.svc.GetNextAllowedQuarter(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 3, next.QuarterNumber)

	_, err = f.svc.Create(ctx, payload(3, 10, 0, 0, 0))
	require.NoError(t, err)
}

func TestService_CreateInTransaction(t *testing.T) {
	ctx := context.Background()
	db, err := sqldb.NewDB(sqldb.Settings{
		Driver: sqldb.DialectSQLite,
		DSN:    filepath.Join(t.TempDir(), "ternak.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	ps, err := sqlparticipant.NewStore(db)
	require.NoError(t, err)
	rs, err := sqlreport.NewStore(db)
	require.NoError(t, err)
	f := newFixture(t, ps, rs, WithTransactions(db))

	r, err := f.svc.Create(ctx, payload(1, 10, 2, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, 8, r.CurrentCount)

	_, err = f.svc.Create(ctx, payload(3, 10, 0, 0, 0))
	assert.True(t, domain.IsConflict(err))

	list, err := f.svc.ListByParticipant(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Triwulan 1 2024", list[0].Label)
}
