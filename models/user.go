package models

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the public profile of an account.
type User struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Role  string `bson:"role" json:"role"`
}

// Credentials holds the authentication record for an account. Stored
// separately from the profile so a missing profiles collection can degrade
// to a derived profile instead of failing login.
type Credentials struct {
	ID           string `bson:"id" json:"id"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
}
