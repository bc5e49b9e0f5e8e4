// Package discussion implements the forum's read and write pipelines:
// existence and ownership guards, the like toggle and the thread detail
// composer.
package discussion

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/store"
)

// Service runs every pipeline against injected stores. It keeps no state of
// its own between calls.
type Service struct {
	threads  store.ThreadStore
	comments store.CommentStore
	replies  store.ReplyStore
	likes    store.LikeStore
	validate *validator.Validate
}

func New(s store.Stores) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{
		threads:  s.Threads,
		comments: s.Comments,
		replies:  s.Replies,
		likes:    s.Likes,
		validate: v,
	}
}

// check validates payload and reports failures as a *domain.ValidationError
// with the missing-property message for kind.
func (s *Service) check(kind string, payload any) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &domain.ValidationError{Message: domain.MissingPropertyMessage(kind), Fields: fields}
}
