package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/confdesk/confreg-backend/internal/model"
	"github.com/confdesk/confreg-backend/internal/repository"
	"github.com/confdesk/confreg-backend/internal/session"
)

type fakeAdminReader struct {
	admins     map[string]*model.AdminUser
	lastLogins []int
	err        error
}

func (f *fakeAdminReader) GetActiveByLogin(_ context.Context, login string) (*model.AdminUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.admins[login]
	if !ok || !a.IsActive {
		return nil, repository.ErrAdminNotFound
	}
	return a, nil
}

func (f *fakeAdminReader) UpdateLastLogin(_ context.Context, id int) error {
	f.lastLogins = append(f.lastLogins, id)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]session.AdminSession
	nextID   int
	destroys []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]session.AdminSession)}
}

func (f *fakeSessionStore) Create(_ context.Context, s session.AdminSession) (string, error) {
	f.nextID++
	id := "sess-" + string(rune('a'+f.nextID))
	f.sessions[id] = s
	return id, nil
}

func (f *fakeSessionStore) Get(_ context.Context, id string) (*session.AdminSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSessionStore) Destroy(_ context.Context, id string) error {
	delete(f.sessions, id)
	f.destroys = append(f.destroys, id)
	return nil
}

type fakeActivityWriter struct {
	entries []model.ActivityLogEntry
	err     error
}

func (f *fakeActivityWriter) Insert(_ context.Context, e *model.ActivityLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeActivityWriter) countAction(action string) int {
	n := 0
	for _, e := range f.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeAdminReader, *fakeSessionStore, *fakeActivityWriter) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	admins := &fakeAdminReader{admins: map[string]*model.AdminUser{
		"admin": {ID: 1, Username: "admin", Email: "admin@example.com", PasswordHash: string(hash), FullName: "Site Admin", Role: "admin", IsActive: true},
		"admin@example.com": {ID: 1, Username: "admin", Email: "admin@example.com", PasswordHash: string(hash), FullName: "Site Admin", Role: "admin", IsActive: true},
	}}
	store := newFakeSessionStore()
	activity := &fakeActivityWriter{}
	svc := NewAuthService(admins, store, NewActivityLogger(activity, zerolog.Nop()), zerolog.Nop())
	return svc, admins, store, activity
}

func TestLoginSuccess(t *testing.T) {
	svc, admins, store, activity := newTestAuthService(t)

	sess, id, err := svc.Login(context.Background(), "admin", "correct horse", ClientInfo{IP: "127.0.0.1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if id == "" {
		t.Error("Login() returned empty session id")
	}
	if sess.Username != "admin" || sess.AdminID != 1 {
		t.Errorf("session = %+v, want admin identity", sess)
	}
	if sess.LoginTime.IsZero() {
		t.Error("session login time not set")
	}
	if len(store.sessions) != 1 {
		t.Errorf("store holds %d sessions, want 1", len(store.sessions))
	}
	if len(admins.lastLogins) != 1 || admins.lastLogins[0] != 1 {
		t.Errorf("last login stamps = %v, want [1]", admins.lastLogins)
	}
	if activity.countAction("login_success") != 1 {
		t.Errorf("login_success entries = %d, want 1", activity.countAction("login_success"))
	}
}

func TestLoginByEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	if _, _, err := svc.Login(context.Background(), "admin@example.com", "correct horse", ClientInfo{}); err != nil {
		t.Fatalf("Login() by email error = %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, store, activity := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "admin", "wrong", ClientInfo{IP: "10.0.0.9", UserAgent: "curl"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if len(store.sessions) != 0 {
		t.Error("failed login created a session")
	}
	if got := activity.countAction("login_failed"); got != 1 {
		t.Errorf("login_failed entries = %d, want 1", got)
	}
	if activity.entries[0].IPAddress != "10.0.0.9" {
		t.Errorf("login_failed entry ip = %q, want caller ip", activity.entries[0].IPAddress)
	}
}

func TestLoginUnknownUserIndistinguishable(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, _, wrongPass := svc.Login(context.Background(), "admin", "wrong", ClientInfo{})
	_, _, unknown := svc.Login(context.Background(), "nobody", "wrong", ClientInfo{})

	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v, want ErrInvalidCredentials", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Errorf("unknown-user error %q differs from wrong-password error %q", unknown, wrongPass)
	}
}

func TestLoginInactiveAdminFailsLikeUnknown(t *testing.T) {
	svc, admins, _, activity := newTestAuthService(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("still correct"), bcrypt.MinCost)
	admins.admins["ghost"] = &model.AdminUser{
		ID: 2, Username: "ghost", PasswordHash: string(hash), IsActive: false,
	}

	_, _, err := svc.Login(context.Background(), "ghost", "still correct", ClientInfo{})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("inactive admin login error = %v, want ErrInvalidCredentials", err)
	}
	if got := activity.countAction("login_failed"); got != 1 {
		t.Errorf("login_failed entries = %d, want 1", got)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	svc, _, store, activity := newTestAuthService(t)

	_, id, err := svc.Login(context.Background(), "admin", "correct horse", ClientInfo{})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	svc.Logout(context.Background(), id, ClientInfo{})
	if len(store.sessions) != 0 {
		t.Error("logout left the session in the store")
	}
	if got := activity.countAction("logout"); got != 1 {
		t.Errorf("logout entries = %d, want 1", got)
	}

	// Second logout with the same id is a silent no-op.
	svc.Logout(context.Background(), id, ClientInfo{})
	if got := activity.countAction("logout"); got != 1 {
		t.Errorf("logout entries after repeat = %d, want 1", got)
	}

	// Logout with no session id at all is also fine.
	svc.Logout(context.Background(), "", ClientInfo{})
}

func TestLoginStorageFailureIsNotInvalidCredentials(t *testing.T) {
	svc, admins, store, activity := newTestAuthService(t)
	admins.err = errors.New("connection refused: database is down")

	_, _, err := svc.Login(context.Background(), "admin", "correct horse", ClientInfo{})
	if err == nil {
		t.Fatal("Login() succeeded against a failing store")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, storage failure must not read as bad credentials", err)
	}
	if got := activity.countAction("login_failed"); got != 0 {
		t.Errorf("login_failed entries = %d, want 0 for a storage failure", got)
	}
	if len(store.sessions) != 0 {
		t.Error("storage failure created a session")
	}
}

func TestActivityLogFailureDoesNotMaskLogin(t *testing.T) {
	svc, _, _, activity := newTestAuthService(t)
	activity.err = errors.New("admin_logs is on fire")

	if _, _, err := svc.Login(context.Background(), "admin", "correct horse", ClientInfo{}); err != nil {
		t.Fatalf("Login() error = %v, want success despite activity log failure", err)
	}
}
