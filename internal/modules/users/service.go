package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopfront.dev/app/internal/db"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Service struct {
	db   *gorm.DB
	cost int
}

func NewService(gdb *gorm.DB) *Service {
	return &Service{db: gdb, cost: bcrypt.DefaultCost}
}

// WithCost is for tests, where the default cost is needlessly slow.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Create stores the user with a bcrypt hash. Emails compare case-insensitively.
func (s *Service) Create(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var n int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return User{}, err
	}
	if n > 0 {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}

	u := User{Email: email, HashedPassword: string(hash)}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		// lost a race with a concurrent signup
		if db.IsDuplicateKey(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	return u, err
}

// CheckPassword reports whether password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}
