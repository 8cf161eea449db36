package user

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	seq  int
	rows map[string]*User
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]*User)}
}

func (m *memRepo) Create(ctx context.Context, u *User) error {
	for _, other := range m.rows {
		if other.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
		if other.IdentificationNum == u.IdentificationNum {
			return ErrIdentificationInUse
		}
	}
	m.seq++
	u.ID = "user-" + strconv.Itoa(m.seq)
	u.CreatedAt = time.Now()
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := m.rows[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hash:"+plain {
		return ErrInvalidCredentials
	}
	return nil
}

func registerReq() RegisterRequest {
	return RegisterRequest{
		Name:              "Ana",
		LastName:          "García",
		IdentificationNum: "001-1234567-8",
		Email:             "Ana@Example.com",
		Password:          "secret-pass",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := NewService(newMemRepo(), plainHasher{})

		u, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "ana@example.com", u.Email, "email is normalized")
		assert.Equal(t, RoleCustomer, u.Role, "role defaults to customer")
		assert.True(t, u.IsActive)
		assert.Equal(t, "Ana García", u.FullName())
		assert.NotEqual(t, "secret-pass", u.PasswordHash)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewService(newMemRepo(), plainHasher{})

		req := registerReq()
		req.IdentificationNum = " "
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrMissingRequiredField)
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewService(newMemRepo(), plainHasher{})

		req := registerReq()
		req.Password = "short"
		_, err := svc.Register(ctx, req)
		assert.Error(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewService(newMemRepo(), plainHasher{})

		_, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)

		dup := registerReq()
		dup.IdentificationNum = "001-0000000-0"
		_, err = svc.Register(ctx, dup)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("duplicate identification number", func(t *testing.T) {
		svc := NewService(newMemRepo(), plainHasher{})

		_, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)

		dup := registerReq()
		dup.Email = "other@example.com"
		_, err = svc.Register(ctx, dup)
		assert.ErrorIs(t, err, ErrIdentificationInUse)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *memRepo) {
		t.Helper()
		repo := newMemRepo()
		svc := NewService(repo, plainHasher{})
		_, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("success records last login", func(t *testing.T) {
		svc, repo := setup(t)

		u, err := svc.Login(ctx, "ana@example.com", "secret-pass")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", u.Email)

		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "ANA@example.com", "secret-pass")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "ana@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "nobody@example.com", "secret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, repo := setup(t)

		u, err := repo.GetByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		repo.rows[u.ID].IsActive = false

		_, err = svc.Login(ctx, "ana@example.com", "secret-pass")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
