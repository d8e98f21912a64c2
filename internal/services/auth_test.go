package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-backend/internal/apperr"
	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/storage"
)

type capturedMail struct {
	to      string
	subject string
	body    string
}

// captureNotifier records outbound mail synchronously, standing in for the
// background dispatcher.
type captureNotifier struct {
	mails []capturedMail
}

func (n *captureNotifier) Notify(to, subject, body string) {
	n.mails = append(n.mails, capturedMail{to: to, subject: subject, body: body})
}

func (n *captureNotifier) last(t *testing.T) capturedMail {
	t.Helper()
	require.NotEmpty(t, n.mails, "expected at least one mail")
	return n.mails[len(n.mails)-1]
}

var codeRe = regexp.MustCompile(`\d{6}`)

func newTestAuth(t *testing.T) (*AuthService, *storage.MemoryStore, *captureNotifier) {
	t.Helper()
	store := storage.NewMemoryStore()
	notifier := &captureNotifier{}
	hasher := NewHasher(4)
	tokens := NewTokenService("test-secret", 60)
	otps := NewOTPService(store, 10)
	return NewAuthService(store, hasher, tokens, otps, notifier, 10), store, notifier
}

func createPasswordUser(t *testing.T, auth *AuthService, store *storage.MemoryStore, email, name, password string) {
	t.Helper()
	hash, err := auth.hasher.Hash(password)
	require.NoError(t, err)
	_, err = store.CreateUser(&models.User{Email: email, Name: name, PasswordHash: hash})
	require.NoError(t, err)
}

func TestRegisterFlow(t *testing.T) {
	t.Parallel()
	auth, store, notifier := newTestAuth(t)

	require.NoError(t, auth.RegisterRequest("new@x.com", "New User", "s3cret"))

	// The code travels only by mail, matching the stored pending record.
	mail := notifier.last(t)
	assert.Equal(t, "new@x.com", mail.to)
	assert.Equal(t, "Verify your Folio account", mail.subject)
	reg, err := store.GetPendingRegistration("new@x.com")
	require.NoError(t, err)
	assert.Contains(t, mail.body, reg.Code)

	token, err := auth.RegisterVerify("new@x.com", reg.Code)
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	// Token subject resolves to the created user.
	user, err := auth.CurrentUser(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	assert.Equal(t, "New User", user.Name)

	// Pending record consumed; password login now works.
	_, err = store.GetPendingRegistration("new@x.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = auth.Login("new@x.com", "s3cret")
	assert.NoError(t, err)
}

func TestRegisterRequest_AlreadyRegistered(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)
	createPasswordUser(t, auth, store, "taken@x.com", "Taken", "pw")

	err := auth.RegisterRequest("taken@x.com", "Someone Else", "pw2")
	assert.ErrorIs(t, err, apperr.ErrAlreadyRegistered)
}

func TestRegisterVerify_Failures(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)

	_, err := auth.RegisterVerify("nobody@x.com", "123456")
	assert.ErrorIs(t, err, apperr.ErrNoPendingRegistration)

	require.NoError(t, auth.RegisterRequest("new@x.com", "New User", "pw"))
	reg, err := store.GetPendingRegistration("new@x.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == reg.Code {
		wrong = "000001"
	}
	_, err = auth.RegisterVerify("new@x.com", wrong)
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)

	// Correct code past its expiry.
	reg.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.UpsertPendingRegistration(reg))
	_, err = auth.RegisterVerify("new@x.com", reg.Code)
	assert.ErrorIs(t, err, apperr.ErrCodeExpired)
}

func TestRegisterRequest_OverwriteInvalidatesOldCode(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)

	require.NoError(t, auth.RegisterRequest("new@x.com", "First", "pw1"))
	first, err := store.GetPendingRegistration("new@x.com")
	require.NoError(t, err)
	firstCode := first.Code

	require.NoError(t, auth.RegisterRequest("new@x.com", "Second", "pw2"))
	second, err := store.GetPendingRegistration("new@x.com")
	require.NoError(t, err)
	if firstCode == second.Code {
		t.Skip("generated codes collided; rerun")
	}

	_, err = auth.RegisterVerify("new@x.com", firstCode)
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)

	// The surviving record carries the second request's fields.
	token, err := auth.RegisterVerify("new@x.com", second.Code)
	require.NoError(t, err)
	assert.Equal(t, "Second", token.User.Name)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)
	createPasswordUser(t, auth, store, "user@x.com", "User", "right-pw")

	// Passwordless account: login must fail even with an "" password.
	_, err := store.CreateUser(&models.User{Email: "otp-only@x.com", Name: "OTP Only"})
	require.NoError(t, err)

	cases := []struct {
		name            string
		email, password string
	}{
		{"unknown email", "nobody@x.com", "right-pw"},
		{"wrong password", "user@x.com", "wrong-pw"},
		{"otp-only account", "otp-only@x.com", "anything"},
		{"otp-only account empty password", "otp-only@x.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Login(tc.email, tc.password)
			assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		})
	}

	_, err = auth.Login("user@x.com", "right-pw")
	assert.NoError(t, err)
}

func TestOTPLogin_NewUserSignup(t *testing.T) {
	t.Parallel()
	auth, store, notifier := newTestAuth(t)

	require.NoError(t, auth.RequestOTP("fresh@x.com"))
	mail := notifier.last(t)
	assert.Equal(t, "Your Folio Login Code", mail.subject)
	code := codeRe.FindString(mail.body)
	require.NotEmpty(t, code)

	// New email without a name: rejected. The original consumes the code
	// before the name check, so a fresh code is needed afterwards.
	_, err := auth.VerifyOTP("fresh@x.com", code, "")
	assert.ErrorIs(t, err, apperr.ErrNameRequired)

	require.NoError(t, auth.RequestOTP("fresh@x.com"))
	record, err := store.GetOTP("fresh@x.com")
	require.NoError(t, err)

	token, err := auth.VerifyOTP("fresh@x.com", record.Code, "Fresh User")
	require.NoError(t, err)
	assert.Equal(t, "Fresh User", token.User.Name)
	assert.False(t, token.User.HasPassword())

	// The account is OTP-only: password login stays closed.
	_, err = auth.Login("fresh@x.com", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestOTPLogin_ExistingUser(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)
	createPasswordUser(t, auth, store, "user@x.com", "User", "pw")

	require.NoError(t, auth.RequestOTP("user@x.com"))
	record, err := store.GetOTP("user@x.com")
	require.NoError(t, err)

	// Name in the payload is ignored for an existing account.
	token, err := auth.VerifyOTP("user@x.com", record.Code, "Different Name")
	require.NoError(t, err)
	assert.Equal(t, "User", token.User.Name)

	// Single use.
	_, err = auth.VerifyOTP("user@x.com", record.Code, "")
	assert.ErrorIs(t, err, apperr.ErrOTPNotFound)
}

func TestVerifyOTP_RejectsResetCode(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)
	createPasswordUser(t, auth, store, "user@x.com", "User", "pw")

	require.NoError(t, auth.RequestReset("user@x.com"))
	record, err := store.GetOTP("user@x.com")
	require.NoError(t, err)

	// Matching digits, wrong purpose: always rejected on the login path.
	_, err = auth.VerifyOTP("user@x.com", record.Code, "")
	assert.ErrorIs(t, err, apperr.ErrWrongPurpose)
}

func TestResetFlow(t *testing.T) {
	t.Parallel()
	auth, store, notifier := newTestAuth(t)
	createPasswordUser(t, auth, store, "user@x.com", "User", "old-pw")

	assert.ErrorIs(t, auth.RequestReset("nobody@x.com"), apperr.ErrNoAccount)

	require.NoError(t, auth.RequestReset("user@x.com"))
	mail := notifier.last(t)
	assert.Equal(t, "Reset your Folio password", mail.subject)
	record, err := store.GetOTP("user@x.com")
	require.NoError(t, err)
	assert.Contains(t, mail.body, record.Code)

	wrong := "000000"
	if wrong == record.Code {
		wrong = "000001"
	}
	assert.ErrorIs(t, auth.ResetVerify("user@x.com", wrong, "new-pw"), apperr.ErrInvalidCode)

	require.NoError(t, auth.ResetVerify("user@x.com", record.Code, "new-pw"))

	_, err = auth.Login("user@x.com", "old-pw")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = auth.Login("user@x.com", "new-pw")
	assert.NoError(t, err)

	// The reset code is gone.
	assert.ErrorIs(t, auth.ResetVerify("user@x.com", record.Code, "again"), apperr.ErrNoPendingReset)
}

func TestResetOverwritesLoginCode(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)
	createPasswordUser(t, auth, store, "a@x.com", "A", "pw")

	require.NoError(t, auth.RequestOTP("a@x.com"))
	loginRecord, err := store.GetOTP("a@x.com")
	require.NoError(t, err)
	loginCode := loginRecord.Code

	require.NoError(t, auth.RequestReset("a@x.com"))
	resetRecord, err := store.GetOTP("a@x.com")
	require.NoError(t, err)
	if loginCode == resetRecord.Code {
		t.Skip("generated codes collided; rerun")
	}

	// One record per email: the login code was overwritten by a
	// reset-purpose record, so the login path rejects both codes on
	// purpose before looking at the digits.
	_, err = auth.VerifyOTP("a@x.com", loginCode, "")
	assert.ErrorIs(t, err, apperr.ErrWrongPurpose)
	_, err = auth.VerifyOTP("a@x.com", resetRecord.Code, "")
	assert.ErrorIs(t, err, apperr.ErrWrongPurpose)

	// On the reset path the stale login code is just a wrong code.
	assert.ErrorIs(t, auth.ResetVerify("a@x.com", loginCode, "new-pw"), apperr.ErrInvalidCode)
	require.NoError(t, auth.ResetVerify("a@x.com", resetRecord.Code, "new-pw"))
}

func TestRegisterVerify_DuplicateRace(t *testing.T) {
	t.Parallel()
	auth, store, _ := newTestAuth(t)

	require.NoError(t, auth.RegisterRequest("race@x.com", "Racer", "pw"))
	reg, err := store.GetPendingRegistration("race@x.com")
	require.NoError(t, err)

	// A user appears for the same email during the unconfirmed window.
	_, err = store.CreateUser(&models.User{Email: "race@x.com", Name: "Sniper"})
	require.NoError(t, err)

	_, err = auth.RegisterVerify("race@x.com", reg.Code)
	assert.ErrorIs(t, err, apperr.ErrAlreadyRegistered)
}
