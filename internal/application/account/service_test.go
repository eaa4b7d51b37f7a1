package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/caioolkk/semcensura-loja/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountStore) GetByToken(ctx context.Context, token string) (*domain.Account, error) {
	args := m.Called(ctx, token)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountStore) Put(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockAccountStore) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	return m.Called(ctx, email, updates).Error(0)
}
func (m *mockAccountStore) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

// --- helpers ---

func newService(as *mockAccountStore, mm *mockMailer) Service {
	return NewService(ServiceDeps{
		AccountRepo:     as,
		Mailer:          mm,
		FrontendBaseURL: "https://loja.example.com",
	})
}

func baseReq() domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     "Ana",
		Email:    "a@x.com",
		Phone:    "11999990000",
		Password: "p1",
	}
}

// --- Register tests ---

func TestRegister_MissingFields(t *testing.T) {
	svc := newService(&mockAccountStore{}, &mockMailer{})
	for _, req := range []domain.RegisterRequest{
		{Email: "a@x.com", Password: "p1"},
		{Name: "Ana", Password: "p1"},
		{Name: "Ana", Email: "a@x.com"},
	} {
		err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
	}
}

func TestRegister_EmailConflict(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.Account{}, nil)

	svc := newService(as, &mockMailer{})
	err := svc.Register(context.Background(), baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	as.AssertExpectations(t)
}

func TestRegister_HappyPath(t *testing.T) {
	as := &mockAccountStore{}
	mm := &mockMailer{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)

	var stored *domain.Account
	as.On("Put", mock.Anything, mock.AnythingOfType("*domain.Account")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Account) }).
		Return(nil)
	mm.On("SendEmail", "a@x.com", confirmSubject, mock.AnythingOfType("string")).Return(nil)

	svc := newService(as, mm)
	require.NoError(t, svc.Register(context.Background(), baseReq()))

	require.NotNil(t, stored)
	assert.False(t, stored.Verified)
	assert.Len(t, stored.VerificationToken, 64) // 32 random bytes, hex-encoded
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")))
	assert.NotEqual(t, "p1", stored.PasswordHash)

	// The confirmation mail must carry the link with the issued token.
	body := mm.Calls[0].Arguments.String(2)
	assert.Contains(t, body, "/confirmar?token="+stored.VerificationToken)
	as.AssertExpectations(t)
	mm.AssertExpectations(t)
}

func TestRegister_MailFailureStillRegisters(t *testing.T) {
	as := &mockAccountStore{}
	mm := &mockMailer{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)
	as.On("Put", mock.Anything, mock.Anything).Return(nil)
	mm.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newService(as, mm)
	err := svc.Register(context.Background(), baseReq())

	assert.NoError(t, err)
	as.AssertExpectations(t)
	mm.AssertExpectations(t)
}

func TestRegister_StoreConflictWins(t *testing.T) {
	// Another registration can slip in between the existence check and the
	// insert; the store's own uniqueness guarantee must surface as a conflict.
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)
	as.On("Put", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	svc := newService(as, &mockMailer{})
	err := svc.Register(context.Background(), baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRegister_StorageFailure(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)
	as.On("Put", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := newService(as, &mockMailer{})
	err := svc.Register(context.Background(), baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestRegister_UniqueTokensAcrossAccounts(t *testing.T) {
	as := &mockAccountStore{}
	mm := &mockMailer{}
	as.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	var tokens []string
	as.On("Put", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			tokens = append(tokens, args.Get(1).(*domain.Account).VerificationToken)
		}).
		Return(nil)
	mm.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newService(as, mm)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		req := baseReq()
		req.Email = email
		require.NoError(t, svc.Register(context.Background(), req))
	}
	seen := map[string]bool{}
	for _, tok := range tokens {
		assert.False(t, seen[tok], "token issued twice")
		seen[tok] = true
	}
}

// --- Confirm tests ---

func TestConfirm_EmptyToken(t *testing.T) {
	svc := newService(&mockAccountStore{}, &mockMailer{})
	err := svc.Confirm(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestConfirm_UnknownToken_MutatesNothing(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByToken", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := newService(as, &mockMailer{})
	err := svc.Confirm(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	as.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_HappyPath(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByToken", mock.Anything, "tok1").Return(&domain.Account{Email: "a@x.com"}, nil)
	as.On("Update", mock.Anything, "a@x.com", map[string]interface{}{"verified": true}).Return(nil)

	svc := newService(as, &mockMailer{})
	require.NoError(t, svc.Confirm(context.Background(), "tok1"))
	as.AssertExpectations(t)
}

func TestConfirm_Idempotent(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByToken", mock.Anything, "tok1").Return(&domain.Account{Email: "a@x.com", Verified: true}, nil)

	svc := newService(as, &mockMailer{})
	require.NoError(t, svc.Confirm(context.Background(), "tok1"))
	// Already verified: reports success without another write.
	as.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// --- Login tests ---

func verifiedAccount(t *testing.T) *domain.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.Account{Name: "Ana", Email: "a@x.com", PasswordHash: string(hash), Verified: true}
}

func TestLogin_UnknownEmail(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(as, &mockMailer{})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@x.com", Password: "p1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_Unverified_RegardlessOfPassword(t *testing.T) {
	a := verifiedAccount(t)
	a.Verified = false
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(a, nil)

	svc := newService(as, &mockMailer{})
	for _, password := range []string{"p1", "wrong"} {
		_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: password})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(verifiedAccount(t), nil)

	svc := newService(as, &mockMailer{})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UnknownEmailAndWrongPassword_Indistinguishable(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(verifiedAccount(t), nil)

	svc := newService(as, &mockMailer{})
	_, errUnknown := svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@x.com", Password: "p1"})
	_, errWrongPw := svc.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "wrong"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogin_HappyPath(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@x.com").Return(verifiedAccount(t), nil)

	svc := newService(as, &mockMailer{})
	pub, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "p1"})

	require.NoError(t, err)
	assert.Equal(t, &domain.PublicAccount{Name: "Ana", Email: "a@x.com"}, pub)
}

func TestLogin_ErrorNeverLeaksWhichEmailsExist(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(as, &mockMailer{})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@x.com", Password: "p1"})

	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "ghost@x.com"))
}
