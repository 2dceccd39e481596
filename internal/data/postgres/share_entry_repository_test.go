package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
)

func testEntry() *shareentry.Entry {
	return &shareentry.Entry{
		ID:              uuid.New(),
		TenantID:        testTenantID,
		ShareholderID:   uuid.New(),
		ShareClass:      shared.ShareClassA,
		NumberOfShares:  500,
		ShareNumberFrom: 1,
		ShareNumberTo:   500,
		NominalValue:    1.0,
		VotesPerShare:   10,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
}

func entryRows(entries ...*shareentry.Entry) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "tenant_id", "shareholder_id", "share_class", "number_of_shares", "share_number_from", "share_number_to", "nominal_value", "votes_per_share", "is_active", "created_at"})
	for _, e := range entries {
		rows.AddRow(e.ID, e.TenantID, e.ShareholderID, e.ShareClass, e.NumberOfShares, e.ShareNumberFrom, e.ShareNumberTo, e.NominalValue, e.VotesPerShare, e.IsActive, e.CreatedAt)
	}
	return rows
}

func TestShareEntryRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareEntryRepository{querier: mock, logger: newTestLogger()}
	e := testEntry()

	query := `
		INSERT INTO share_entries \(id, tenant_id, shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, is_active, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, \$10, \$11\)
	`

	mock.ExpectExec(query).
		WithArgs(e.ID, e.TenantID, e.ShareholderID, e.ShareClass, e.NumberOfShares, e.ShareNumberFrom, e.ShareNumberTo, e.NominalValue, e.VotesPerShare, e.IsActive, e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(ctx, e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareEntryRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareEntryRepository{querier: mock, logger: newTestLogger()}
	expected := testEntry()

	query := `
		SELECT id, tenant_id, shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, is_active, created_at
		FROM share_entries
		WHERE tenant_id = \$1 AND id = \$2
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(testTenantID, expected.ID).WillReturnRows(entryRows(expected))

		e, err := repo.GetByID(ctx, testTenantID, expected.ID)
		assert.NoError(t, err)
		assert.Equal(t, expected, e)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(testTenantID, expected.ID).WillReturnError(pgx.ErrNoRows)

		e, err := repo.GetByID(ctx, testTenantID, expected.ID)
		assert.Nil(t, e)
		var notFoundErr shareentry.ErrEntryNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, expected.ID, notFoundErr.EntryID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShareEntryRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareEntryRepository{querier: mock, logger: newTestLogger()}
	e := testEntry()

	query := `
		SELECT id, tenant_id, shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, is_active, created_at
		FROM share_entries
		WHERE tenant_id = \$1 AND is_active = true
		ORDER BY share_class, share_number_from
	`

	mock.ExpectQuery(query).WithArgs(testTenantID).WillReturnRows(entryRows(e))

	entries, err := repo.ListActive(ctx, testTenantID)
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ShareNumberFrom, entries[0].ShareNumberFrom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareEntryRepository_CountActiveByShareholder(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareEntryRepository{querier: mock, logger: newTestLogger()}
	shareholderID := uuid.New()

	query := `
		SELECT COUNT\(\*\)
		FROM share_entries
		WHERE tenant_id = \$1 AND shareholder_id = \$2 AND is_active = true
	`

	mock.ExpectQuery(query).
		WithArgs(testTenantID, shareholderID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.CountActiveByShareholder(ctx, testTenantID, shareholderID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareEntryRepository_LockActiveByShareholderClass(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareEntryRepository{querier: mock, logger: newTestLogger()}
	e := testEntry()

	query := `
		SELECT id, tenant_id, shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, is_active, created_at
		FROM share_entries
		WHERE tenant_id = \$1 AND shareholder_id = \$2 AND share_class = \$3 AND is_active = true
		ORDER BY share_number_from
		FOR UPDATE
	`

	mock.ExpectQuery(query).
		WithArgs(testTenantID, e.ShareholderID, e.ShareClass).
		WillReturnRows(entryRows(e))

	entries, err := repo.LockActiveByShareholderClass(ctx, testTenantID, e.ShareholderID, e.ShareClass)
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareEntryRepository_Deactivate(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareEntryRepository{querier: mock, logger: newTestLogger()}
	id := uuid.New()

	updateQuery := `
		UPDATE share_entries
		SET is_active = false
		WHERE tenant_id = \$1 AND id = \$2 AND is_active = true
	`
	existsQuery := `SELECT EXISTS \(SELECT 1 FROM share_entries WHERE tenant_id = \$1 AND id = \$2\)`

	t.Run("deactivates active entry", func(t *testing.T) {
		mock.ExpectExec(updateQuery).
			WithArgs(testTenantID, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		changed, err := repo.Deactivate(ctx, testTenantID, id)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		mock.ExpectExec(updateQuery).
			WithArgs(testTenantID, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(existsQuery).
			WithArgs(testTenantID, id).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		changed, err := repo.Deactivate(ctx, testTenantID, id)
		assert.NoError(t, err)
		assert.False(t, changed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing entry is a not-found", func(t *testing.T) {
		mock.ExpectExec(updateQuery).
			WithArgs(testTenantID, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(existsQuery).
			WithArgs(testTenantID, id).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		changed, err := repo.Deactivate(ctx, testTenantID, id)
		assert.False(t, changed)
		var notFoundErr shareentry.ErrEntryNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
