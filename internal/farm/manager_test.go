package farm

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/krishimitra/krishi/internal/catalog"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/utils"
)

var fixedNow = time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

func setupManager(t *testing.T) (*Manager, *storage.JSONStore) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "users.json"))
	m := NewManager(store,
		WithClock(func() time.Time { return fixedNow }),
		WithCatalog(catalog.Builtin()),
		WithHashCost(bcrypt.MinCost),
	)
	return m, store
}

func register(t *testing.T, m *Manager, mobile string) models.UserRecord {
	t.Helper()
	u, err := m.Register(RegisterInput{Name: "Ravi", Location: "Palakkad", Mobile: mobile, Password: "secret"})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	return u
}

func TestRegister(t *testing.T) {
	m, _ := setupManager(t)
	u := register(t, m, "9876543210")

	if u.PasswordHash == "secret" || !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Errorf("PasswordHash = %q, want bcrypt hash", u.PasswordHash)
	}
	if u.RegisteredAt != "2025-01-10T09:30:00Z" {
		t.Errorf("RegisteredAt = %q", u.RegisteredAt)
	}
	if u.Crops == nil || u.Reminders == nil {
		t.Error("new user should have empty, non-nil crop and reminder lists")
	}

	_, err := m.Register(RegisterInput{Mobile: "9876543210", Password: "other"})
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Errorf("duplicate Register() error = %v, want ErrAlreadyExists", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	m, _ := setupManager(t)
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{name: "empty mobile", in: RegisterInput{Mobile: "  ", Password: "x"}},
		{name: "empty password", in: RegisterInput{Mobile: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Register(tt.in); !errors.Is(err, apperrors.ErrInvalidArgument) {
				t.Errorf("Register() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "9876543210")

	if _, err := m.Authenticate("9876543210", "secret"); err != nil {
		t.Errorf("Authenticate() with right password failed: %v", err)
	}
	if _, err := m.Authenticate("9876543210", "wrong"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := m.Authenticate("0000000000", "secret"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Authenticate() error = %v, want ErrNotFound", err)
	}
}

func TestAuthenticateUpgradesLegacyHash(t *testing.T) {
	m, store := setupManager(t)
	sum := sha256.Sum256([]byte("secret"))
	legacy := models.UserRecord{Mobile: "9000000000", PasswordHash: hex.EncodeToString(sum[:])}
	if err := store.SaveUser(legacy); err != nil {
		t.Fatalf("SaveUser() failed: %v", err)
	}

	if _, err := m.Authenticate("9000000000", "wrong"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := m.Authenticate("9000000000", "secret"); err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}

	stored, _ := store.GetUser("9000000000")
	if isLegacyHash(stored.PasswordHash) {
		t.Error("legacy hash was not replaced")
	}
	if _, err := m.Authenticate("9000000000", "secret"); err != nil {
		t.Errorf("Authenticate() after upgrade failed: %v", err)
	}
}

func TestGetUser(t *testing.T) {
	m, _ := setupManager(t)

	_, found, err := m.GetUser("9876543210")
	if err != nil || found {
		t.Errorf("GetUser(absent) = (%v, %v), want (false, nil)", found, err)
	}

	register(t, m, "9876543210")
	u, found, err := m.GetUser("9876543210")
	if err != nil || !found || u.Name != "Ravi" {
		t.Errorf("GetUser() = (%+v, %v, %v)", u, found, err)
	}
}

func TestAddCrop(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "9876543210")

	planted := time.Date(2025, 1, 1, 18, 45, 0, 0, time.UTC)
	h, err := m.AddCrop("9876543210", "Rice (Paddy)", planted, 2.5)
	if err != nil {
		t.Fatalf("AddCrop() failed: %v", err)
	}
	if h.PlantingDate != "2025-01-01" {
		t.Errorf("PlantingDate = %q, want 2025-01-01", h.PlantingDate)
	}
	if h.AddedAt != "2025-01-10T09:30:00Z" {
		t.Errorf("AddedAt = %q", h.AddedAt)
	}

	u, _, _ := m.GetUser("9876543210")
	if len(u.Crops) != 1 || u.Crops[0].AreaAcres != 2.5 {
		t.Errorf("Crops = %+v", u.Crops)
	}
}

func TestAddCropErrors(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "9876543210")
	planted := utils.MustParseDate("2025-01-01")

	if _, err := m.AddCrop("0000000000", "Banana", planted, 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("AddCrop(unknown user) error = %v, want ErrNotFound", err)
	}
	for _, area := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := m.AddCrop("9876543210", "Banana", planted, area); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("AddCrop(area %g) error = %v, want ErrInvalidArgument", area, err)
		}
	}
	if _, err := m.AddCrop("9876543210", "", planted, 1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("AddCrop(no name) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := m.AddCrop("9876543210", "Banana", time.Time{}, 1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("AddCrop(zero date) error = %v, want ErrInvalidArgument", err)
	}
}

func TestAddCropUnknownNameIsStored(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "9876543210")

	h, err := m.AddCrop("9876543210", "Cardamom", utils.MustParseDate("2025-01-01"), 1)
	if err != nil {
		t.Fatalf("AddCrop() failed: %v", err)
	}
	if h.Name != "Cardamom" {
		t.Errorf("Name = %q, want Cardamom", h.Name)
	}
}

func TestSequentialAddCropBothPersist(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "9876543210")

	if _, err := m.AddCrop("9876543210", "Coconut", utils.MustParseDate("2024-06-01"), 1); err != nil {
		t.Fatalf("first AddCrop() failed: %v", err)
	}
	if _, err := m.AddCrop("9876543210", "Pepper", utils.MustParseDate("2024-07-01"), 0.5); err != nil {
		t.Fatalf("second AddCrop() failed: %v", err)
	}

	u, _, _ := m.GetUser("9876543210")
	if len(u.Crops) != 2 || u.Crops[0].Name != "Coconut" || u.Crops[1].Name != "Pepper" {
		t.Errorf("Crops = %+v, want Coconut then Pepper", u.Crops)
	}
}

func TestAddReminderIDs(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "9876543210")

	for i, title := range []string{"Buy urea", "Repair pump", "Call officer"} {
		r, err := m.AddReminder("9876543210", ReminderInput{Title: title, Date: "2025-01-12"})
		if err != nil {
			t.Fatalf("AddReminder(%q) failed: %v", title, err)
		}
		if r.ID != i+1 {
			t.Errorf("reminder %q id = %d, want %d", title, r.ID, i+1)
		}
	}

	u, _, _ := m.GetUser("9876543210")
	for i, r := range u.Reminders {
		if r.ID != i+1 {
			t.Errorf("stored reminder %d id = %d", i, r.ID)
		}
	}
}

func TestAddReminderErrors(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "9876543210")

	tests := []struct {
		name   string
		mobile string
		in     ReminderInput
		want   error
	}{
		{name: "unknown user", mobile: "0", in: ReminderInput{Title: "x", Date: "2025-01-12"}, want: apperrors.ErrNotFound},
		{name: "empty title", mobile: "9876543210", in: ReminderInput{Title: " ", Date: "2025-01-12"}, want: apperrors.ErrInvalidArgument},
		{name: "bad date", mobile: "9876543210", in: ReminderInput{Title: "x", Date: "12/01/2025"}, want: apperrors.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.AddReminder(tt.mobile, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("AddReminder() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	m, _ := setupManager(t)
	register(t, m, "3")
	register(t, m, "1")
	register(t, m, "2")

	users, err := m.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers() failed: %v", err)
	}
	if len(users) != 3 || users[0].Mobile != "1" || users[2].Mobile != "3" {
		t.Errorf("ListUsers() order = %v", users)
	}
}
