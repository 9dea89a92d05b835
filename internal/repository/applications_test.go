package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/models"
)

// newMockDB opens gorm over a sqlmock connection. Expectations are matched
// out of order.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	mock.MatchExpectationsInOrder(false)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCreateWithDebitInsufficientBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplications(db)

	planID := uuid.New()
	app := &models.Application{
		UserID: uuid.New(),
		PostID: uuid.New(),
		PlanID: &planID,
	}

	// Conditional decrement touches no row: the whole transaction rolls
	// back and the insert is never attempted.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "plans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateWithDebit(context.Background(), app, models.JobClassFree)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientBalance))
}

func TestCreateWithDebitRequiresPlan(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewApplications(db)

	err := repo.CreateWithDebit(context.Background(), &models.Application{
		UserID: uuid.New(),
		PostID: uuid.New(),
	}, models.JobClassFree)
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))
}

func TestDeleteWithRefundCommitsBothEffects(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplications(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "plans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteWithRefund(context.Background(), uuid.New(), uuid.New(), uuid.New(), models.JobClassPaid)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A withdrawal whose application row is already gone must not credit the
// plan: a second racing withdrawal would otherwise turn one credit into
// two. No plan update is expected here, so any refund attempt fails the
// transaction.
func TestDeleteWithRefundRequiresApplicationRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplications(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteWithRefund(context.Background(), uuid.New(), uuid.New(), uuid.New(), models.JobClassPaid)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithRefundPlanMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplications(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "plans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteWithRefund(context.Background(), uuid.New(), uuid.New(), uuid.New(), models.JobClassFree)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplications(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), uuid.New(), models.StatusShortlisted)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// The update is keyed on a single id picked by subquery, never on the
// whole post_id set.
func TestMarkSeenByPostFlipsSingleRecord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplications(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET (.+) WHERE id = \(SELECT`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkSeenByPost(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSeenByPostNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplications(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET (.+) WHERE id = \(SELECT`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkSeenByPost(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResolvePaidStoreWins(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobs(db, nil, time.Minute, zap.NewNop())

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "job_title", "job_type"}).
			AddRow(id.String(), owner.String(), "Go Engineer", "Full Time"))

	posting, class, err := repo.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.JobClassPaid, class)
	assert.Equal(t, owner, posting.OwnerID)
	assert.Equal(t, "Go Engineer", posting.JobTitle)
}

func TestResolveFallsBackToFreeStore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobs(db, nil, time.Minute, zap.NewNop())

	id := uuid.New()
	owner := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "free_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "job_title", "job_type"}).
			AddRow(id.String(), owner.String(), "Intern", "Part Time"))

	posting, class, err := repo.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.JobClassFree, class)
	assert.Equal(t, "Intern", posting.JobTitle)
}

func TestResolveNotFoundInEitherStore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobs(db, nil, time.Minute, zap.NewNop())

	mock.ExpectQuery(`SELECT (.+) FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "free_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.Resolve(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
