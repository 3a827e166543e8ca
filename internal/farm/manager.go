package farm

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/krishimitra/krishi/internal/catalog"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/logger"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/utils"
)

// Manager mutates user records. Every mutation reads the whole record,
// changes it in memory and writes it back; concurrent writers on the same
// user race and the last one wins.
type Manager struct {
	store   storage.Provider
	catalog *catalog.Catalog
	now     func() time.Time
	cost    int
}

type Option func(*Manager)

// WithClock sets the clock used for registered_at, added_at and created_at.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithCatalog enables a warning when a crop is added that the catalog does not know.
func WithCatalog(c *catalog.Catalog) Option {
	return func(m *Manager) { m.catalog = c }
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(m *Manager) { m.cost = cost }
}

func NewManager(store storage.Provider, opts ...Option) *Manager {
	m := &Manager{store: store, now: time.Now, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type RegisterInput struct {
	Name     string
	Location string
	Mobile   string
	Password string
}

type ReminderInput struct {
	Title       string
	Date        string // YYYY-MM-DD
	Description string
}

func (m *Manager) timestamp() string {
	return utils.FormatTimestamp(m.now())
}

// Register creates a new user with a bcrypt password hash.
func (m *Manager) Register(in RegisterInput) (models.UserRecord, error) {
	mobile := strings.TrimSpace(in.Mobile)
	if mobile == "" {
		return models.UserRecord{}, apperrors.InvalidArgumentf("mobile number is required")
	}
	if in.Password == "" {
		return models.UserRecord{}, apperrors.InvalidArgumentf("password is required")
	}

	_, found, err := m.GetUser(mobile)
	if err != nil {
		return models.UserRecord{}, err
	}
	if found {
		return models.UserRecord{}, fmt.Errorf("%w: mobile %s is already registered", apperrors.ErrAlreadyExists, mobile)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), m.cost)
	if err != nil {
		return models.UserRecord{}, apperrors.InvalidArgumentf("cannot hash password: %v", err)
	}

	user := models.UserRecord{
		Mobile:       mobile,
		Name:         strings.TrimSpace(in.Name),
		Location:     strings.TrimSpace(in.Location),
		PasswordHash: string(hash),
		RegisteredAt: m.timestamp(),
		Crops:        []models.CropHolding{},
		Reminders:    []models.Reminder{},
	}
	if err := m.store.SaveUser(user); err != nil {
		return models.UserRecord{}, err
	}

	logger.Info("Registered user", "mobile", mobile)
	return user, nil
}

// Authenticate checks a password against the stored hash.
func (m *Manager) Authenticate(mobile, password string) (models.UserRecord, error) {
	user, err := m.store.GetUser(strings.TrimSpace(mobile))
	if err != nil {
		return models.UserRecord{}, err
	}
	if isLegacyHash(user.PasswordHash) {
		return m.upgradeLegacy(user, password)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Failed login", "mobile", user.Mobile)
		return models.UserRecord{}, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// isLegacyHash matches the unsalted hex SHA-256 digests of older records.
func isLegacyHash(h string) bool {
	if len(h) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(h)
	return err == nil
}

// upgradeLegacy verifies a legacy digest and replaces it with a bcrypt hash.
func (m *Manager) upgradeLegacy(user models.UserRecord, password string) (models.UserRecord, error) {
	sum := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(strings.ToLower(user.PasswordHash))) != 1 {
		logger.Warn("Failed login", "mobile", user.Mobile)
		return models.UserRecord{}, apperrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return models.UserRecord{}, apperrors.InvalidArgumentf("cannot hash password: %v", err)
	}
	user = user.Clone()
	user.PasswordHash = string(hash)
	if err := m.store.SaveUser(user); err != nil {
		return models.UserRecord{}, err
	}
	logger.Info("Upgraded legacy password hash", "mobile", user.Mobile)
	return user, nil
}

// GetUser returns the record for mobile. An absent user is (zero, false, nil).
func (m *Manager) GetUser(mobile string) (models.UserRecord, bool, error) {
	user, err := m.store.GetUser(mobile)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.UserRecord{}, false, nil
	}
	if err != nil {
		return models.UserRecord{}, false, err
	}
	return user, true, nil
}

// ListUsers returns all users sorted by mobile.
func (m *Manager) ListUsers() ([]models.UserRecord, error) {
	users, err := m.store.GetAllUsers()
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Mobile < users[j].Mobile })
	return users, nil
}

// AddCrop appends a planting to the user's crops. Names outside the catalog
// are stored as given and projected with the default schedule.
func (m *Manager) AddCrop(mobile, cropKey string, plantingDate time.Time, areaAcres float64) (models.CropHolding, error) {
	cropKey = strings.TrimSpace(cropKey)
	if cropKey == "" {
		return models.CropHolding{}, apperrors.InvalidArgumentf("crop name is required")
	}
	if !utils.ValidArea(areaAcres) {
		return models.CropHolding{}, apperrors.InvalidArgumentf("area must be a positive number, got %g", areaAcres)
	}
	if plantingDate.IsZero() {
		return models.CropHolding{}, apperrors.InvalidArgumentf("planting date is required")
	}

	user, err := m.store.GetUser(mobile)
	if err != nil {
		return models.CropHolding{}, err
	}

	if m.catalog != nil && !m.catalog.Has(cropKey) {
		logger.Warn("Crop not in catalog, default schedule applies",
			"crop", cropKey, "default", m.catalog.DefaultKey(), "mobile", mobile)
	}

	holding := models.CropHolding{
		Name:         cropKey,
		PlantingDate: utils.FormatDate(utils.DateOf(plantingDate)),
		AreaAcres:    areaAcres,
		AddedAt:      m.timestamp(),
	}
	user = user.Clone()
	user.Crops = append(user.Crops, holding)
	if err := m.store.SaveUser(user); err != nil {
		return models.CropHolding{}, err
	}

	logger.Info("Added crop", "mobile", mobile, "crop", cropKey, "planting_date", holding.PlantingDate)
	return holding, nil
}

// AddReminder appends a reminder with id = current count + 1.
func (m *Manager) AddReminder(mobile string, in ReminderInput) (models.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Reminder{}, apperrors.InvalidArgumentf("reminder title is required")
	}
	date, err := utils.ParseDate(in.Date)
	if err != nil {
		return models.Reminder{}, err
	}

	user, err := m.store.GetUser(mobile)
	if err != nil {
		return models.Reminder{}, err
	}

	reminder := models.Reminder{
		ID:          user.NextReminderID(),
		Title:       title,
		Date:        utils.FormatDate(date),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   m.timestamp(),
	}
	user = user.Clone()
	user.Reminders = append(user.Reminders, reminder)
	if err := m.store.SaveUser(user); err != nil {
		return models.Reminder{}, err
	}

	logger.Info("Added reminder", "mobile", mobile, "id", reminder.ID, "date", reminder.Date)
	return reminder, nil
}
