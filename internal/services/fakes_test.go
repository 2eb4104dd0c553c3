package services_test

import (
	"sync"

	"github.com/fieldforcehq/fieldforce-backend/internal/config"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/fieldforcehq/fieldforce-backend/internal/repository"
	"github.com/fieldforcehq/fieldforce-backend/internal/services"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// In-memory implementations of the repository ports. Reads hand out
// copies so tests observe the re-read-fresh-state behavior of the real
// store.

type fakeActorCodeRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]models.ActorCode
	findErr error
}

func newFakeActorCodeRepo() *fakeActorCodeRepo {
	return &fakeActorCodeRepo{rows: make(map[uuid.UUID]models.ActorCode)}
}

var _ repository.ActorCodeRepository = (*fakeActorCodeRepo)(nil)

func (f *fakeActorCodeRepo) FindByCode(firmID, code string) (*models.ActorCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.rows {
		if r.FirmID == firmID && r.Code == code {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeActorCodeRepo) Insert(ac *models.ActorCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ac.ID == uuid.Nil {
		ac.ID = uuid.New()
	}
	f.rows[ac.ID] = *ac
	return nil
}

func (f *fakeActorCodeRepo) Update(ac *models.ActorCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[ac.ID] = *ac
	return nil
}

func (f *fakeActorCodeRepo) DeleteByCode(firmID, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.rows {
		if r.FirmID == firmID && r.Code == code {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeActorCodeRepo) List(firmID string, limit, offset int) ([]models.ActorCode, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.ActorCode
	for _, r := range f.rows {
		if r.FirmID == firmID {
			all = append(all, r)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeActorCodeRepo) ListByStatus(firmID, status string) ([]models.ActorCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ActorCode
	for _, r := range f.rows {
		if r.FirmID == firmID && r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeActorCodeRepo) count(firmID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rows {
		if r.FirmID == firmID {
			n++
		}
	}
	return n
}

type fakeUserRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]models.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[uuid.UUID]models.User)}
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) FindByCode(firmID, code string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.rows {
		if r.FirmID == firmID && r.Code == code {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(firmID, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.FirmID == firmID && r.Email == email {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(firmID string, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok && r.FirmID == firmID {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Insert(u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) DeleteByCode(firmID, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.rows {
		if r.FirmID == firmID && r.Code == code {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeUserRepo) DeleteByID(firmID string, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok && r.FirmID == firmID {
		delete(f.rows, id)
	}
	return nil
}

func (f *fakeUserRepo) List(firmID string, limit, offset int) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.User
	for _, r := range f.rows {
		if r.FirmID == firmID {
			all = append(all, r)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeUserRepo) ListBound(firmID string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, r := range f.rows {
		if r.FirmID == firmID && r.Code != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) count(firmID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rows {
		if r.FirmID == firmID {
			n++
		}
	}
	return n
}

// testConfig uses bcrypt.MinCost so provisioning stays fast under test.
func testConfig() *config.Config {
	return &config.Config{
		IdentityDefaultPassword: "123456",
		IdentityEmailDomain:     "example.com",
		BcryptCost:              bcrypt.MinCost,
	}
}

func newTestBinding() (*services.BindingService, *fakeActorCodeRepo, *fakeUserRepo) {
	acRepo := newFakeActorCodeRepo()
	userRepo := newFakeUserRepo()
	return services.NewBindingService(acRepo, userRepo, testConfig()), acRepo, userRepo
}
