package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
)

const testTenantID = "tenant-acme"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testShareholder() *shareholder.Shareholder {
	now := time.Now()
	return &shareholder.Shareholder{
		ID:                 uuid.New(),
		TenantID:           testTenantID,
		Name:               "Anna Lindqvist",
		Type:               shared.ShareholderTypeIndividual,
		OrganizationNumber: "19840101-1234",
		Email:              "anna@example.com",
		Address:            "Storgatan 1, Stockholm",
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestShareholderRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareholderRepository{querier: mock, logger: logger}
	s := testShareholder()

	query := `
		INSERT INTO shareholders \(id, tenant_id, name, type, organization_number, email, address, is_active, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, \$10\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(s.ID, s.TenantID, s.Name, s.Type, s.OrganizationNumber, s.Email, s.Address, s.IsActive, s.CreatedAt, s.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, s)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(s.ID, s.TenantID, s.Name, s.Type, s.OrganizationNumber, s.Email, s.Address, s.IsActive, s.CreatedAt, s.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, s)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create shareholder")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShareholderRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareholderRepository{querier: mock, logger: logger}
	expected := testShareholder()

	query := `
		SELECT id, tenant_id, name, type, organization_number, email, address, is_active, created_at, updated_at
		FROM shareholders
		WHERE tenant_id = \$1 AND id = \$2
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "tenant_id", "name", "type", "organization_number", "email", "address", "is_active", "created_at", "updated_at"}).
			AddRow(expected.ID, expected.TenantID, expected.Name, expected.Type, expected.OrganizationNumber, expected.Email, expected.Address, expected.IsActive, expected.CreatedAt, expected.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(testTenantID, expected.ID).WillReturnRows(rows)

		s, err := repo.GetByID(ctx, testTenantID, expected.ID)
		assert.NoError(t, err)
		assert.Equal(t, expected, s)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(testTenantID, expected.ID).WillReturnError(pgx.ErrNoRows)

		s, err := repo.GetByID(ctx, testTenantID, expected.ID)
		assert.Error(t, err)
		assert.Nil(t, s)
		var notFoundErr shareholder.ErrShareholderNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, expected.ID, notFoundErr.ShareholderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShareholderRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareholderRepository{querier: mock, logger: logger}
	s := testShareholder()

	query := `
		SELECT id, tenant_id, name, type, organization_number, email, address, is_active, created_at, updated_at
		FROM shareholders
		WHERE tenant_id = \$1 AND is_active = true
		ORDER BY name ASC
	`

	rows := pgxmock.NewRows([]string{"id", "tenant_id", "name", "type", "organization_number", "email", "address", "is_active", "created_at", "updated_at"}).
		AddRow(s.ID, s.TenantID, s.Name, s.Type, s.OrganizationNumber, s.Email, s.Address, s.IsActive, s.CreatedAt, s.UpdatedAt)
	mock.ExpectQuery(query).WithArgs(testTenantID).WillReturnRows(rows)

	list, err := repo.ListActive(ctx, testTenantID)
	assert.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s.Name, list[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareholderRepository_Update(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareholderRepository{querier: mock, logger: logger}
	s := testShareholder()

	query := `
		UPDATE shareholders
		SET name = \$1, type = \$2, organization_number = \$3, email = \$4, address = \$5, is_active = \$6, updated_at = \$7
		WHERE tenant_id = \$8 AND id = \$9
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(s.Name, s.Type, s.OrganizationNumber, s.Email, s.Address, s.IsActive, s.UpdatedAt, s.TenantID, s.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(ctx, s)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(s.Name, s.Type, s.OrganizationNumber, s.Email, s.Address, s.IsActive, s.UpdatedAt, s.TenantID, s.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, s)
		assert.ErrorIs(t, err, shareholder.ErrShareholderNotFound{ShareholderID: s.ID})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShareholderRepository_Deactivate(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShareholderRepository{querier: mock, logger: logger}
	id := uuid.New()

	query := `
		UPDATE shareholders
		SET is_active = false, updated_at = NOW\(\)
		WHERE tenant_id = \$1 AND id = \$2
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(testTenantID, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Deactivate(ctx, testTenantID, id)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(testTenantID, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Deactivate(ctx, testTenantID, id)
		var notFoundErr shareholder.ErrShareholderNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
