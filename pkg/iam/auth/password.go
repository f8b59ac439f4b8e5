package auth

import "golang.org/x/crypto/bcrypt"

// PasswordService verifies operator passwords.
type PasswordService interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// BcryptPasswordService implements PasswordService with bcrypt.
type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService creates a bcrypt password service at the
// default cost.
func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

func (s *BcryptPasswordService) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *BcryptPasswordService) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
