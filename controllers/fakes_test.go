package controllers_test

import (
	"context"
	"net/http"

	"flowerhub/middleware"
	"flowerhub/models"
	"flowerhub/utils"
)

type fakeCatalog struct {
	listFunc       func(ctx context.Context) ([]models.Product, error)
	getFunc        func(ctx context.Context, id string) (models.Product, error)
	categoriesFunc func(ctx context.Context) ([]string, error)
}

func (f *fakeCatalog) List(ctx context.Context) ([]models.Product, error) {
	return f.listFunc(ctx)
}

func (f *fakeCatalog) Get(ctx context.Context, id string) (models.Product, error) {
	return f.getFunc(ctx, id)
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]string, error) {
	return f.categoriesFunc(ctx)
}

func (f *fakeCatalog) Create(ctx context.Context, p models.Product) (models.Product, error) {
	return p, nil
}

func (f *fakeCatalog) Update(ctx context.Context, id string, p models.Product) error {
	return nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeIdentity struct {
	loginFunc          func(ctx context.Context, email, password string) (models.User, error)
	signupFunc         func(ctx context.Context, name, email, password string) (models.User, error)
	getCurrentUserFunc func(ctx context.Context, userID, email string) (models.User, error)
	updateProfileFunc  func(ctx context.Context, userID, name, email string) error
}

func (f *fakeIdentity) Login(ctx context.Context, email, password string) (models.User, error) {
	return f.loginFunc(ctx, email, password)
}

func (f *fakeIdentity) Signup(ctx context.Context, name, email, password string) (models.User, error) {
	return f.signupFunc(ctx, name, email, password)
}

func (f *fakeIdentity) GetCurrentUser(ctx context.Context, userID, email string) (models.User, error) {
	return f.getCurrentUserFunc(ctx, userID, email)
}

func (f *fakeIdentity) UpdateProfile(ctx context.Context, userID, name, email string) error {
	return f.updateProfileFunc(ctx, userID, name, email)
}

type fakeOrders struct {
	createFunc func(ctx context.Context, userID string, items []models.CartItem, total float64) (models.Order, error)
	listFunc   func(ctx context.Context, userID string) ([]models.Order, error)
}

func (f *fakeOrders) Create(ctx context.Context, userID string, items []models.CartItem, total float64) (models.Order, error) {
	return f.createFunc(ctx, userID, items, total)
}

func (f *fakeOrders) List(ctx context.Context, userID string) ([]models.Order, error) {
	return f.listFunc(ctx, userID)
}

type fakeMailer struct{}

func (fakeMailer) SendWelcomeEmail(toEmail, name string) error { return nil }

func (fakeMailer) SendOrderConfirmationEmail(toEmail string, order models.Order) error { return nil }

// authed attaches JWT claims to the request the way the auth middleware does.
func authed(r *http.Request, userID string) *http.Request {
	claims := &utils.Claims{UserID: userID, Email: userID + "@example.com", Role: models.RoleCustomer}
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, claims)
	return r.WithContext(ctx)
}
