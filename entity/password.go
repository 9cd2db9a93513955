package entity

import "golang.org/x/crypto/bcrypt"

const passwordCost = 10

// SetPassword stores the bcrypt hash of plain, never plain itself.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)

	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
