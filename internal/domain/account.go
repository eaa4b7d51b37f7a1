package domain

import "time"

type Account struct {
	Name              string    `json:"name" dynamodbav:"name"`
	Email             string    `json:"email" dynamodbav:"email"`
	Phone             string    `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash      string    `json:"-" dynamodbav:"password_hash"`
	VerificationToken string    `json:"-" dynamodbav:"verification_token"`
	Verified          bool      `json:"verified" dynamodbav:"verified"`
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PublicAccount is the projection returned on login. The password hash and
// the verification token must never leave the service.
type PublicAccount struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{Name: a.Name, Email: a.Email}
}
