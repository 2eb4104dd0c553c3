package services_test

import (
	"testing"

	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/fieldforcehq/fieldforce-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*services.UserService, *fakeActorCodeRepo, *fakeUserRepo) {
	binding, acRepo, userRepo := newTestBinding()
	return services.NewUserService(userRepo, binding, testConfig()), acRepo, userRepo
}

func TestAdminProvisionWithoutActorCode(t *testing.T) {
	svc, _, _ := newTestUserService()

	user, err := svc.Create(testFirm, &dto.CreateUserRequest{
		Name:     "back office",
		Position: "ASM",
		Role:     "admin",
	})
	require.NoError(t, err)

	assert.Empty(t, user.Code, "admin-provisioned accounts have no badge")
	assert.Nil(t, user.ActorCodeID)
	assert.Equal(t, "Back Office", user.Name)
	assert.Equal(t, "backoffice_asm@example.com", user.Email)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.True(t, user.IsVerified)
}

func TestAdminProvisionDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Create(testFirm, &dto.CreateUserRequest{Name: "Back Office", Position: "asm"})
	require.NoError(t, err)

	_, err = svc.Create(testFirm, &dto.CreateUserRequest{Name: "Back Office", Position: "asm"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestDeactivateUserFlipsActorCode(t *testing.T) {
	svc, acRepo, userRepo := newTestUserService()

	seedActorCode(t, acRepo, "E001", "John Smith", "tse", "employee", models.StatusActive)
	user := models.User{
		FirmID: testFirm,
		Code:   "E001",
		Name:   "John Smith",
		Email:  "johnsmith_tse@example.com",
		Status: models.StatusActive,
	}
	require.NoError(t, userRepo.Insert(&user))

	updated, binding, err := svc.Deactivate(testFirm, user.ID)
	require.NoError(t, err)
	assert.True(t, binding.Success)
	assert.Equal(t, models.StatusInactive, updated.Status)

	ac, err := acRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, ac.Status)
}

func TestDeleteUserDeactivatesActorCode(t *testing.T) {
	svc, acRepo, userRepo := newTestUserService()

	seedActorCode(t, acRepo, "E001", "John Smith", "tse", "employee", models.StatusActive)
	user := models.User{
		FirmID: testFirm,
		Code:   "E001",
		Name:   "John Smith",
		Email:  "johnsmith_tse@example.com",
		Status: models.StatusActive,
	}
	require.NoError(t, userRepo.Insert(&user))

	binding, err := svc.Delete(testFirm, user.ID)
	require.NoError(t, err)
	assert.True(t, binding.Success)

	assert.Equal(t, 0, userRepo.count(testFirm))

	// The badge survives, flipped inactive — never cascade-deleted.
	ac, err := acRepo.FindByCode(testFirm, "E001")
	require.NoError(t, err)
	require.NotNil(t, ac)
	assert.Equal(t, models.StatusInactive, ac.Status)
}

func TestDeleteUnboundUser(t *testing.T) {
	svc, acRepo, userRepo := newTestUserService()

	user := models.User{
		FirmID: testFirm,
		Name:   "Back Office",
		Email:  "backoffice_asm@example.com",
		Status: models.StatusActive,
	}
	require.NoError(t, userRepo.Insert(&user))

	binding, err := svc.Delete(testFirm, user.ID)
	require.NoError(t, err)
	assert.True(t, binding.Success)
	assert.Equal(t, 0, userRepo.count(testFirm))
	assert.Equal(t, 0, acRepo.count(testFirm))
}

func TestDeactivateMissingUser(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, _, err := svc.Deactivate(testFirm, uuid.New())
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
