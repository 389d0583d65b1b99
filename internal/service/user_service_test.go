package service

import (
	"context"
	"errors"
	"testing"

	"tweetapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByLoginIDFn func(context.Context, string) (*models.User, error)
	getByEmailFn   func(context.Context, string) (*models.User, error)
	searchFn       func(context.Context, string) ([]models.User, error)
	listFn         func(context.Context) ([]models.User, error)
	createFn       func(context.Context, *models.User) error
	updateFn       func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	return s.getByLoginIDFn(ctx, loginID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) SearchByLoginID(ctx context.Context, fragment string) ([]models.User, error) {
	return s.searchFn(ctx, fragment)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByLoginIDFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		searchFn:       func(_ context.Context, _ string) ([]models.User, error) { return nil, nil },
		listFn:         func(_ context.Context) ([]models.User, error) { return nil, nil },
		createFn:       func(_ context.Context, _ *models.User) error { return nil },
		updateFn:       func(_ context.Context, _ *models.User) error { return nil },
	}
}

// seqRepoStub is a stub for repository.SequenceRepository.
type seqRepoStub struct {
	nextFn func(context.Context, string) (uint, error)
}

func (s *seqRepoStub) Next(ctx context.Context, name string) (uint, error) {
	return s.nextFn(ctx, name)
}

func countingSeq() *seqRepoStub {
	var n uint
	return &seqRepoStub{nextFn: func(_ context.Context, _ string) (uint, error) {
		n++
		return n, nil
	}}
}

func validCandidate() models.User {
	return models.User{
		LoginID:         "amanb",
		Email:           "a@x.com",
		Password:        "p1",
		ConfirmPassword: "p1",
		ContactNumber:   "9876543210",
		DisplayName:     "Aman B",
	}
}

func assertUserFailure(t *testing.T, resp *models.UserResponse, code models.StatusCode, message string) {
	t.Helper()
	require.NotNil(t, resp)
	assert.Equal(t, models.Failure, resp.Type)
	assert.Equal(t, code, resp.Code)
	assert.Equal(t, message, resp.Message)
	assert.Empty(t, resp.Users)
}

func TestUserService_Register_PasswordMismatchWinsFirst(t *testing.T) {
	t.Parallel()

	// Login id and email are both taken, but the password check runs first
	// and is the only failure revealed.
	repo := noopUserRepo()
	repo.getByLoginIDFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 1, LoginID: "amanb"}, nil
	}
	repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 2, Email: "a@x.com"}, nil
	}
	svc := NewUserService(repo, countingSeq())

	candidate := validCandidate()
	candidate.ConfirmPassword = "something-else"
	resp := svc.Register(context.Background(), candidate)

	assertUserFailure(t, resp, models.StatusConflict, MsgPasswordMismatch)
}

func TestUserService_Register_LoginTaken(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByLoginIDFn = func(_ context.Context, loginID string) (*models.User, error) {
		if loginID == "amanb" {
			return &models.User{ID: 1, LoginID: "amanb", Email: "other@x.com"}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo, countingSeq())

	// Different email, same login id: still rejected.
	candidate := validCandidate()
	candidate.Email = "b@x.com"
	resp := svc.Register(context.Background(), candidate)

	assertUserFailure(t, resp, models.StatusConflict, MsgLoginTaken)
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		return &models.User{ID: 1, LoginID: "someoneelse", Email: email}, nil
	}
	svc := NewUserService(repo, countingSeq())

	resp := svc.Register(context.Background(), validCandidate())

	assertUserFailure(t, resp, models.StatusConflict, MsgEmailTaken)
}

func TestUserService_Register_AssignsSequenceID(t *testing.T) {
	t.Parallel()

	var created *models.User
	var seqName string
	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, user *models.User) error {
		created = user
		return nil
	}
	seq := &seqRepoStub{nextFn: func(_ context.Context, name string) (uint, error) {
		seqName = name
		return 7, nil
	}}
	svc := NewUserService(repo, seq)

	resp := svc.Register(context.Background(), validCandidate())

	require.NotNil(t, resp)
	assert.Equal(t, models.Success, resp.Type)
	assert.Equal(t, models.StatusOK, resp.Code)
	assert.Equal(t, MsgUserCreated, resp.Message)

	require.NotNil(t, created)
	assert.Equal(t, uint(7), created.ID)
	assert.Equal(t, models.UserSequence, seqName)
	assert.Empty(t, created.ConfirmPassword, "confirm password must never be persisted")
}

func TestUserService_Register_StorageFaultStaysGeneric(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByLoginIDFn = func(_ context.Context, _ string) (*models.User, error) {
		return nil, errors.New("connection refused")
	}
	svc := NewUserService(repo, countingSeq())

	resp := svc.Register(context.Background(), validCandidate())

	assertUserFailure(t, resp, models.StatusInternalError, MsgInternalError)
	assert.NotContains(t, resp.Message, "connection refused")
}

func TestUserService_Register_RacedInsertSurfacesConflict(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, _ *models.User) error {
		return models.NewConflictError("Login id or email already in use")
	}
	svc := NewUserService(repo, countingSeq())

	resp := svc.Register(context.Background(), validCandidate())

	assertUserFailure(t, resp, models.StatusConflict, "Login id or email already in use")
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	stored := &models.User{ID: 1, LoginID: "amanb", Password: "p1"}
	repo := noopUserRepo()
	repo.getByLoginIDFn = func(_ context.Context, loginID string) (*models.User, error) {
		if loginID == stored.LoginID {
			return stored, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo, countingSeq())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resp := svc.Login(ctx, "amanb", "p1")
		require.NotNil(t, resp)
		assert.Equal(t, models.Success, resp.Type)
		assert.Equal(t, models.StatusOK, resp.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := svc.Login(ctx, "amanb", "wrong")
		assertUserFailure(t, resp, models.StatusConflict, MsgWrongPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := svc.Login(ctx, "nobody", "p1")
		assertUserFailure(t, resp, models.StatusNotFound, MsgUserNotFound)
	})
}

func TestUserService_ForgotPassword(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByLoginIDFn = func(_ context.Context, loginID string) (*models.User, error) {
		if loginID == "amanb" {
			return &models.User{ID: 1, LoginID: "amanb"}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo, countingSeq())

	resp := svc.ForgotPassword(context.Background(), "amanb")
	require.NotNil(t, resp)
	assert.Equal(t, models.StatusOK, resp.Code)
	assert.Equal(t, MsgAccountFound, resp.Message)

	resp = svc.ForgotPassword(context.Background(), "ghost")
	assertUserFailure(t, resp, models.StatusNotFound, MsgUserNotFound)
}

func TestUserService_ResetPassword(t *testing.T) {
	t.Parallel()

	newStored := func() *models.User {
		return &models.User{
			ID:            1,
			LoginID:       "amanb",
			Email:         "a@x.com",
			Password:      "old",
			ContactNumber: "9876543210",
		}
	}

	candidate := models.User{
		Email:           "a@x.com",
		ContactNumber:   "9876543210",
		Password:        "new",
		ConfirmPassword: "new",
	}

	t.Run("success overwrites password", func(t *testing.T) {
		t.Parallel()
		stored := newStored()
		var updated *models.User
		repo := noopUserRepo()
		repo.getByLoginIDFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		repo.updateFn = func(_ context.Context, user *models.User) error {
			updated = user
			return nil
		}
		svc := NewUserService(repo, countingSeq())

		resp := svc.ResetPassword(context.Background(), "amanb", candidate)
		require.NotNil(t, resp)
		assert.Equal(t, models.StatusOK, resp.Code)
		assert.Equal(t, MsgPasswordChanged, resp.Message)
		require.NotNil(t, updated)
		assert.Equal(t, "new", updated.Password)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), countingSeq())
		resp := svc.ResetPassword(context.Background(), "ghost", candidate)
		assertUserFailure(t, resp, models.StatusNotFound, MsgUserNotFound)
	})

	t.Run("password mismatch", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByLoginIDFn = func(_ context.Context, _ string) (*models.User, error) { return newStored(), nil }
		svc := NewUserService(repo, countingSeq())

		bad := candidate
		bad.ConfirmPassword = "other"
		resp := svc.ResetPassword(context.Background(), "amanb", bad)
		assertUserFailure(t, resp, models.StatusConflict, MsgPasswordMismatch)
	})

	t.Run("contact mismatch", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByLoginIDFn = func(_ context.Context, _ string) (*models.User, error) { return newStored(), nil }
		svc := NewUserService(repo, countingSeq())

		bad := candidate
		bad.ContactNumber = "0000000000"
		resp := svc.ResetPassword(context.Background(), "amanb", bad)
		assertUserFailure(t, resp, models.StatusConflict, MsgContactMismatch)
	})
}

func TestUserService_ListAllUsers(t *testing.T) {
	t.Parallel()

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), countingSeq())
		resp := svc.ListAllUsers(context.Background())
		assertUserFailure(t, resp, models.StatusNotFound, MsgNoUsersFound)
	})

	t.Run("returns everyone", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.listFn = func(_ context.Context) ([]models.User, error) {
			return []models.User{{ID: 1, LoginID: "a"}, {ID: 2, LoginID: "b"}}, nil
		}
		svc := NewUserService(repo, countingSeq())

		resp := svc.ListAllUsers(context.Background())
		require.NotNil(t, resp)
		assert.Equal(t, models.StatusOK, resp.Code)
		assert.Len(t, resp.Users, 2)
	})
}

func TestUserService_SearchByUserName(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.searchFn = func(_ context.Context, fragment string) ([]models.User, error) {
		if fragment == "ama" {
			return []models.User{{ID: 1, LoginID: "amanb"}}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo, countingSeq())

	resp := svc.SearchByUserName(context.Background(), "ama")
	require.NotNil(t, resp)
	assert.Equal(t, models.StatusOK, resp.Code)
	assert.Len(t, resp.Users, 1)

	resp = svc.SearchByUserName(context.Background(), "zzz")
	assertUserFailure(t, resp, models.StatusNotFound, MsgNoUsersFound)
}

func TestUserService_GetByUserName_WrapsSingleUserInList(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByLoginIDFn = func(_ context.Context, loginID string) (*models.User, error) {
		if loginID == "amanb" {
			return &models.User{ID: 1, LoginID: "amanb"}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo, countingSeq())

	resp := svc.GetByUserName(context.Background(), "amanb")
	require.NotNil(t, resp)
	assert.Equal(t, models.StatusOK, resp.Code)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "amanb", resp.Users[0].LoginID)

	resp = svc.GetByUserName(context.Background(), "ghost")
	assertUserFailure(t, resp, models.StatusNotFound, MsgNoUsersFound)
}
