package models

import "golang.org/x/crypto/bcrypt"

// AdminUser is the single operator account. It lives in memory only; its
// credentials come from configuration.
type AdminUser struct {
	Username string
	Password string
}

func NewAdminUser(username, password string) (*AdminUser, error) {
	u := &AdminUser{Username: username}
	if err := u.HashPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// HashPassword hashes the user's password
func (u *AdminUser) HashPassword(password string) error {
	passwordInBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(passwordInBytes)
	return nil
}

// CheckPassword checks if the provided password matches the user's password
func (u *AdminUser) CheckPassword(providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(providedPassword))
}
