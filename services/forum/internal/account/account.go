// Package account registers users and exchanges credentials for access
// tokens.
package account

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/plaintext"
	"github.com/example/forum-platform/services/forum/internal/store"
	"github.com/example/forum-platform/services/forum/internal/tokens"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type Service struct {
	Users      store.UserStore
	Tokens     tokens.Issuer
	BcryptCost int

	validate *validator.Validate
}

func New(users store.UserStore, iss tokens.Issuer, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		Users:      users,
		Tokens:     iss,
		BcryptCost: bcryptCost,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register checks required fields, then length, then the character set,
// then uniqueness. bcrypt only accepts passwords up to 72 bytes.
func (s *Service) Register(ctx context.Context, in domain.NewUser) (domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Fullname = plaintext.Clean(in.Fullname)
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.User{}, err
		}
		for _, fe := range verrs {
			if fe.Tag() == "max" {
				return domain.User{}, &domain.ValidationError{
					Message: domain.MsgUsernameTooLong,
					Fields:  map[string]string{"username": "max"},
				}
			}
		}
		return domain.User{}, &domain.ValidationError{Message: domain.MissingPropertyMessage("user")}
	}
	if !usernameRe.MatchString(in.Username) {
		return domain.User{}, &domain.ValidationError{
			Message: domain.MsgUsernameForbidden,
			Fields:  map[string]string{"username": "charset"},
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.User{}, &domain.ValidationError{
			Message: domain.MsgPasswordTooLong,
			Fields:  map[string]string{"password": "max"},
		}
	}
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.Users.Create(ctx, store.CreateUserParams{
		Username:     in.Username,
		PasswordHash: string(hash),
		Fullname:     in.Fullname,
	})
	if errors.Is(err, store.ErrConflict) {
		return domain.User{}, &domain.ValidationError{Message: domain.MsgUsernameTaken}
	}
	return u, err
}

// Login returns a signed access token. Unknown usernames and wrong passwords
// fail the same way.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, &domain.ValidationError{Message: domain.MsgLoginMissing}
	}

	row, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", time.Time{}, &domain.AuthenticationError{Message: domain.MsgInvalidCredentials}
	}
	if err != nil {
		return "", time.Time{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, &domain.AuthenticationError{Message: domain.MsgInvalidCredentials}
	}

	return s.Tokens.NewAccessToken(row.User.ID, row.User.Username, time.Now().UTC())
}
