package lookup

import (
	"context"
	"errors"
	"testing"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/models"
	"simplepay/internal/repositories"
	"simplepay/internal/testutil"
	"simplepay/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserTypeService_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db, nil, zap.NewNop())
	svc := NewUserTypeService(repositories.NewUserTypeRepository(db), users)
	ctx := context.Background()

	created, err := svc.Create(ctx, "PARTNER", "Partner account")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	description := "Partner business account"
	updated, err := svc.Update(ctx, created.ID, nil, &description)
	require.NoError(t, err)
	assert.Equal(t, "PARTNER", updated.Name)
	assert.Equal(t, description, updated.Description)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, description, got.Description)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, "User type not found")
}

func TestUserTypeService_DuplicateName(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserTypeService(repositories.NewUserTypeRepository(db), repositories.NewUserRepository(db, nil, nil))
	ctx := context.Background()

	_, err := svc.Create(ctx, "COMMON", "")
	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"The name has already been taken."}, errs["name"])

	name := "COMMON"
	_, err = svc.Update(ctx, models.UserTypeShopkeeper, &name, nil)
	assert.True(t, errors.As(err, &errs))

	// Renaming a row to its own name is fine.
	_, err = svc.Update(ctx, models.UserTypeCommon, &name, nil)
	assert.NoError(t, err)
}

func TestDocumentTypeService_DeleteInUse(t *testing.T) {
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db, nil, zap.NewNop())
	svc := NewDocumentTypeService(repositories.NewDocumentTypeRepository(db), users)
	ctx := context.Background()

	testutil.CreateUser(t, db, models.UserTypeCommon, "0")

	err := svc.Delete(ctx, models.DocumentTypeCPF)
	assert.ErrorIs(t, err, apperrors.ErrInUse)

	require.NoError(t, svc.Delete(ctx, models.DocumentTypeCNPJ))

	err = svc.Delete(ctx, models.DocumentTypeCNPJ)
	assert.EqualError(t, err, "Document type not found")
}
