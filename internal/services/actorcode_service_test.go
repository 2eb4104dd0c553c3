package services_test

import (
	"testing"

	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/fieldforcehq/fieldforce-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestActorCodeService() (*services.ActorCodeService, *fakeActorCodeRepo, *fakeUserRepo) {
	binding, acRepo, userRepo := newTestBinding()
	return services.NewActorCodeService(acRepo, binding), acRepo, userRepo
}

func TestCreateActiveCodeProvisionsUser(t *testing.T) {
	svc, _, userRepo := newTestActorCodeService()

	ac, binding, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code:     "e001",
		Name:     "john smith",
		Position: "TSE",
		Role:     "employee",
		Status:   "Active",
	})
	require.NoError(t, err)
	assert.True(t, binding.Success)

	assert.Equal(t, "E001", ac.Code)
	assert.Equal(t, "John Smith", ac.Name)
	assert.Equal(t, "tse", ac.Position)
	assert.Equal(t, models.StatusActive, ac.Status)

	user, err := userRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "John Smith", user.Name)
	assert.Equal(t, "johnsmith_tse@example.com", user.Email)
	assert.True(t, user.IsVerified)
	assert.Equal(t, models.StatusActive, user.Status)
}

func TestCreateInactiveCodeSkipsProvisioning(t *testing.T) {
	svc, _, userRepo := newTestActorCodeService()

	_, binding, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code:   "E002",
		Name:   "Resting Rep",
		Status: models.StatusInactive,
	})
	require.NoError(t, err)
	assert.True(t, binding.Success)
	assert.Equal(t, 0, userRepo.count(testFirm))
}

func TestCreateDuplicateCode(t *testing.T) {
	svc, _, _ := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{Code: "E001", Name: "One", Status: "active"})
	require.NoError(t, err)

	_, _, err = svc.Create(testFirm, &dto.CreateActorCodeRequest{Code: "e001", Name: "Two", Status: "active"})
	assert.ErrorIs(t, err, services.ErrActorCodeExists)
}

func TestCreateRequiresCode(t *testing.T) {
	svc, _, _ := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{Name: "No Badge"})
	assert.ErrorIs(t, err, services.ErrCodeRequired)
}

func TestEditPropagatesNameToUser(t *testing.T) {
	svc, _, userRepo := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code: "E001", Name: "john smith", Position: "tse", Role: "employee", Status: "active",
	})
	require.NoError(t, err)

	_, binding, err := svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Name: "jonathan smith"})
	require.NoError(t, err)
	assert.True(t, binding.Success)

	user, err := userRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Jonathan Smith", user.Name)
	assert.Equal(t, "E001", user.Code, "join key unchanged when code was not edited")
}

func TestEditDeactivationKeepsUser(t *testing.T) {
	svc, acRepo, userRepo := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code: "E001", Name: "John Smith", Position: "tse", Status: "active",
	})
	require.NoError(t, err)

	_, binding, err := svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Status: "inactive"})
	require.NoError(t, err)
	assert.True(t, binding.Success)

	ac, err := acRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, ac.Status)

	user, err := userRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	require.NotNil(t, user, "deactivation mirrors status, it does not delete")
	assert.Equal(t, models.StatusInactive, user.Status)
}

func TestEditReactivationReprovisions(t *testing.T) {
	svc, _, userRepo := newTestActorCodeService()

	// Created inactive, so no user exists yet.
	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code: "E001", Name: "John Smith", Position: "tse", Status: "inactive",
	})
	require.NoError(t, err)
	require.Equal(t, 0, userRepo.count(testFirm))

	_, binding, err := svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Status: "active"})
	require.NoError(t, err)
	assert.True(t, binding.Success)

	user, err := userRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.StatusActive, user.Status)
}

func TestEditReactivationWithSurvivingUser(t *testing.T) {
	svc, _, userRepo := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code: "E001", Name: "John Smith", Position: "tse", Status: "active",
	})
	require.NoError(t, err)

	// Deactivate then reactivate; the user survived the inactive spell.
	_, _, err = svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Status: "inactive"})
	require.NoError(t, err)
	_, binding, err := svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Status: "active"})
	require.NoError(t, err)
	assert.True(t, binding.Success)

	assert.Equal(t, 1, userRepo.count(testFirm), "reactivation must not duplicate the account")
	user, err := userRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, user.Status)
}

func TestEditRenameAndReactivateInOneCall(t *testing.T) {
	svc, acRepo, userRepo := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code: "E001", Name: "John Smith", Position: "tse", Status: "active",
	})
	require.NoError(t, err)

	// Deactivate; the account survives keyed by the old code.
	_, _, err = svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Status: "inactive"})
	require.NoError(t, err)

	_, binding, err := svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Code: "E002", Status: "active"})
	require.NoError(t, err)
	assert.True(t, binding.Success)

	ac, err := acRepo.FindByCode(testFirm, "E002")
	require.NoError(t, err)
	require.NotNil(t, ac)
	assert.Equal(t, models.StatusActive, ac.Status)

	assert.Equal(t, 1, userRepo.count(testFirm), "rename plus reactivate must reuse the surviving account")
	user, err := userRepo.FindByCode(testFirm, "E002")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.StatusActive, user.Status)

	old, err := userRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	assert.Nil(t, old, "old join key must not keep a second account")
}

func TestEditRenameOntoExistingCode(t *testing.T) {
	svc, _, _ := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{Code: "E001", Name: "One", Status: "inactive"})
	require.NoError(t, err)
	_, _, err = svc.Create(testFirm, &dto.CreateActorCodeRequest{Code: "E002", Name: "Two", Status: "inactive"})
	require.NoError(t, err)

	_, _, err = svc.Edit(testFirm, "E001", &dto.UpdateActorCodeRequest{Code: "e002"})
	assert.ErrorIs(t, err, services.ErrActorCodeExists)
}

func TestEditMissingCode(t *testing.T) {
	svc, _, _ := newTestActorCodeService()

	_, _, err := svc.Edit(testFirm, "E404", &dto.UpdateActorCodeRequest{Name: "Nobody"})
	assert.ErrorIs(t, err, services.ErrActorCodeNotFound)
}

func TestDeleteCascadesToUser(t *testing.T) {
	svc, acRepo, userRepo := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code: "E001", Name: "John Smith", Position: "tse", Status: "active",
	})
	require.NoError(t, err)
	require.Equal(t, 1, userRepo.count(testFirm))

	binding, err := svc.Delete(testFirm, "E001")
	require.NoError(t, err)
	assert.True(t, binding.Success)

	ac, err := acRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	assert.Nil(t, ac)
	assert.Equal(t, 0, userRepo.count(testFirm))
}

func TestDeleteWithoutBoundUser(t *testing.T) {
	svc, acRepo, _ := newTestActorCodeService()

	_, _, err := svc.Create(testFirm, &dto.CreateActorCodeRequest{
		Code: "E002", Name: "Resting Rep", Status: "inactive",
	})
	require.NoError(t, err)

	binding, err := svc.Delete(testFirm, "E002")
	require.NoError(t, err)
	assert.True(t, binding.Success)
	assert.Equal(t, 0, acRepo.count(testFirm))
}
