package account

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/caioolkk/semcensura-loja/internal/domain"
	pkgtoken "github.com/caioolkk/semcensura-loja/internal/pkg/token"
	"github.com/caioolkk/semcensura-loja/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const confirmSubject = "Confirme seu cadastro no Sem Censura"

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	Confirm(ctx context.Context, token string) error
	Login(ctx context.Context, req domain.LoginRequest) (*domain.PublicAccount, error)
	List(ctx context.Context) ([]domain.Account, error)
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByToken(ctx context.Context, token string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, email string, updates map[string]interface{}) error
	List(ctx context.Context) ([]domain.Account, error)
}

type mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

type service struct {
	repo            accountStore
	mailer          mailer
	frontendBaseURL string
}

type ServiceDeps struct {
	AccountRepo     accountStore
	Mailer          mailer
	FrontendBaseURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:            deps.AccountRepo,
		mailer:          deps.Mailer,
		frontendBaseURL: deps.FrontendBaseURL,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	token, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	a := &domain.Account{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		PasswordHash:      string(hash),
		VerificationToken: token,
		Verified:          false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		slog.Error("persist account", "email", req.Email, "err", err)
		return fmt.Errorf("persist account: %w", domain.ErrStorage)
	}

	// Delivery is best effort: the account exists either way and the link
	// can be reissued, so a mail failure never fails the registration.
	if err := s.mailer.SendEmail(a.Email, confirmSubject, s.confirmBody(a)); err != nil {
		slog.Warn("verification email not sent", "email", a.Email, "err", err)
	}
	return nil
}

func (s *service) confirmBody(a *domain.Account) string {
	link := s.frontendBaseURL + "/confirmar?token=" + a.VerificationToken
	return fmt.Sprintf(
		`<h2>Olá, %s!</h2>
<p>Obrigado por se cadastrar. Clique no link abaixo para confirmar seu email:</p>
<a href="%s" target="_blank">%s</a>`,
		html.EscapeString(a.Name), link, link,
	)
}

func (s *service) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("token required: %w", domain.ErrBadRequest)
	}
	a, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid confirmation token: %w", domain.ErrNotFound)
	}
	if a.Verified {
		// The token is retained after confirmation, so reopening the same
		// link succeeds without another write.
		return nil
	}
	if err := s.repo.Update(ctx, a.Email, map[string]interface{}{"verified": true}); err != nil {
		slog.Error("persist confirmation", "email", a.Email, "err", err)
		return fmt.Errorf("persist confirmation: %w", domain.ErrStorage)
	}
	return nil
}

// Login checks existence, then verification status, then the password.
// Unknown email and wrong password both come back as ErrUnauthorized so the
// caller cannot probe which emails are registered.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.PublicAccount, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	a, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !a.Verified {
		return nil, fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	pub := a.Public()
	return &pub, nil
}

func (s *service) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}
