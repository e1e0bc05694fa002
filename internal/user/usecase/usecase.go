// Package usecase implements the user module's business operations:
// registration, login with single-active-session token issuance, and user
// administration.
package usecase

import (
	"context"

	"github.com/khairicode/storebite/internal/pkg/clock"
	"github.com/khairicode/storebite/internal/pkg/config"
	"github.com/khairicode/storebite/internal/pkg/hash"
	"github.com/khairicode/storebite/internal/pkg/idempotency"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/jwt"
	"github.com/khairicode/storebite/internal/pkg/uid"
	"github.com/khairicode/storebite/internal/pkg/validator"
	"github.com/khairicode/storebite/internal/user/entity"
	"go.opentelemetry.io/otel/trace"
)

// repoDB is the persistence port used by user use cases.
type repoDB interface {
	ListUsers(ctx context.Context, f entity.ListFilter) ([]entity.User, int64, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsUserByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	CreateUser(ctx context.Context, u entity.User) error
	UpdateUser(ctx context.Context, u entity.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateAccessToken(ctx context.Context, t entity.AccessToken) error
	RevokeAllAccessTokens(ctx context.Context, userID int64) error
}

// repoEvent publishes user domain events, best-effort.
type repoEvent interface {
	UserRegistered(ctx context.Context, u entity.User)
	UserLoggedIn(ctx context.Context, userID int64)
	UserCreated(ctx context.Context, u entity.User)
	UserUpdated(ctx context.Context, u entity.User)
	UserDeleted(ctx context.Context, id int64)
}

// Dependency lists what the user use cases need.
type Dependency struct {
	RepoDB      repoDB
	RepoEvent   repoEvent
	Validator   validator.Validator
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Bcrypt      hash.Hash
	JWT         jwt.JWT
	Idempotency idempotency.Idempotency
	Instrument  instrument.Instrumentation
}

// Usecase bundles the user operations behind one receiver.
type Usecase struct {
	repoDB      repoDB
	repoEvent   repoEvent
	validator   validator.Validator
	cfg         config.Config
	uid         uid.NumberID
	clock       clock.Clocker
	bcrypt      hash.Hash
	jwt         jwt.JWT
	idempotency idempotency.Idempotency
	ins         instrument.Instrumentation
}

// New constructs the user Usecase.
func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:      dep.RepoDB,
		repoEvent:   dep.RepoEvent,
		validator:   dep.Validator,
		cfg:         dep.Config,
		uid:         dep.UID,
		clock:       dep.Clock,
		bcrypt:      dep.Bcrypt,
		jwt:         dep.JWT,
		idempotency: dep.Idempotency,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("user.usecase").Start(ctx, name)
}

// issueToken generates a signed token and registers its ID in the allow-list.
func (s *Usecase) issueToken(ctx context.Context, u entity.User) (string, error) {
	tok, err := s.jwt.Generate(u.ID, u.Email)
	if err != nil {
		return "", err
	}

	err = s.repoDB.CreateAccessToken(ctx, entity.AccessToken{
		ID:        s.uid.Generate(),
		UserID:    u.ID,
		TokenID:   tok.ID,
		ExpiresAt: tok.ExpiresAt,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return "", err
	}

	return tok.Value, nil
}
