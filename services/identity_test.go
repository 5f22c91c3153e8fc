package services_test

import (
	"context"
	"testing"

	"flowerhub/models"
	"flowerhub/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeIdentityBackend struct {
	findCredentialsFunc   func(ctx context.Context, email string) (models.Credentials, error)
	insertCredentialsFunc func(ctx context.Context, creds models.Credentials) error
	getProfileFunc        func(ctx context.Context, userID string) (models.User, error)
	insertProfileFunc     func(ctx context.Context, profile models.User) error
	updateProfileFunc     func(ctx context.Context, userID, name, email string) error
}

func (f *fakeIdentityBackend) FindCredentials(ctx context.Context, email string) (models.Credentials, error) {
	return f.findCredentialsFunc(ctx, email)
}

func (f *fakeIdentityBackend) InsertCredentials(ctx context.Context, creds models.Credentials) error {
	return f.insertCredentialsFunc(ctx, creds)
}

func (f *fakeIdentityBackend) GetProfile(ctx context.Context, userID string) (models.User, error) {
	return f.getProfileFunc(ctx, userID)
}

func (f *fakeIdentityBackend) InsertProfile(ctx context.Context, profile models.User) error {
	return f.insertProfileFunc(ctx, profile)
}

func (f *fakeIdentityBackend) UpdateProfile(ctx context.Context, userID, name, email string) error {
	return f.updateProfileFunc(ctx, userID, name, email)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginWithStoredProfile(t *testing.T) {
	identity := services.NewIdentity(&fakeIdentityBackend{
		findCredentialsFunc: func(ctx context.Context, email string) (models.Credentials, error) {
			return models.Credentials{ID: "u1", Email: email, PasswordHash: hashOf(t, "secret")}, nil
		},
		getProfileFunc: func(ctx context.Context, userID string) (models.User, error) {
			return models.User{ID: "u1", Name: "Rosa", Email: "rosa@example.com", Role: models.RoleAdmin}, nil
		},
	})

	user, err := identity.Login(context.Background(), "rosa@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Rosa", user.Name)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLoginDerivesProfileWhenSchemaMissing(t *testing.T) {
	identity := services.NewIdentity(&fakeIdentityBackend{
		findCredentialsFunc: func(ctx context.Context, email string) (models.Credentials, error) {
			return models.Credentials{ID: "u1", Email: email, PasswordHash: hashOf(t, "secret")}, nil
		},
		getProfileFunc: func(ctx context.Context, userID string) (models.User, error) {
			return models.User{}, services.ErrSchemaMissing
		},
	})

	user, err := identity.Login(context.Background(), "rosa@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "rosa", user.Name)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, "rosa@example.com", user.Email)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	identity := services.NewIdentity(&fakeIdentityBackend{
		findCredentialsFunc: func(ctx context.Context, email string) (models.Credentials, error) {
			return models.Credentials{ID: "u1", Email: email, PasswordHash: hashOf(t, "secret")}, nil
		},
	})

	_, err := identity.Login(context.Background(), "rosa@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	identity := services.NewIdentity(&fakeIdentityBackend{
		findCredentialsFunc: func(ctx context.Context, email string) (models.Credentials, error) {
			return models.Credentials{}, services.ErrNotFound
		},
	})

	_, err := identity.Login(context.Background(), "nobody@example.com", "secret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestSignupCreatesCustomer(t *testing.T) {
	var storedCreds models.Credentials
	var storedProfile models.User
	identity := services.NewIdentity(&fakeIdentityBackend{
		findCredentialsFunc: func(ctx context.Context, email string) (models.Credentials, error) {
			return models.Credentials{}, services.ErrNotFound
		},
		insertCredentialsFunc: func(ctx context.Context, creds models.Credentials) error {
			storedCreds = creds
			return nil
		},
		insertProfileFunc: func(ctx context.Context, profile models.User) error {
			storedProfile = profile
			return nil
		},
	})

	user, err := identity.Signup(context.Background(), "Rosa", "rosa@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, user, storedProfile)
	assert.Equal(t, user.ID, storedCreds.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedCreds.PasswordHash), []byte("secret")))
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	identity := services.NewIdentity(&fakeIdentityBackend{
		findCredentialsFunc: func(ctx context.Context, email string) (models.Credentials, error) {
			return models.Credentials{ID: "u1", Email: email}, nil
		},
	})

	_, err := identity.Signup(context.Background(), "Rosa", "rosa@example.com", "secret")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestSignupSurvivesMissingProfilesCollection(t *testing.T) {
	identity := services.NewIdentity(&fakeIdentityBackend{
		findCredentialsFunc: func(ctx context.Context, email string) (models.Credentials, error) {
			return models.Credentials{}, services.ErrNotFound
		},
		insertCredentialsFunc: func(ctx context.Context, creds models.Credentials) error {
			return nil
		},
		insertProfileFunc: func(ctx context.Context, profile models.User) error {
			return services.ErrSchemaMissing
		},
	})

	user, err := identity.Signup(context.Background(), "Rosa", "rosa@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Rosa", user.Name)
}

func TestUpdateProfileSimulatesSuccessWhenSchemaMissing(t *testing.T) {
	identity := services.NewIdentity(&fakeIdentityBackend{
		updateProfileFunc: func(ctx context.Context, userID, name, email string) error {
			return services.ErrSchemaMissing
		},
	})

	err := identity.UpdateProfile(context.Background(), "u1", "Rosa", "rosa@example.com")
	assert.NoError(t, err)
}
