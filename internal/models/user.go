package models

// UserRecord is one farmer's persisted state, keyed by mobile number.
type UserRecord struct {
	Mobile       string        `json:"mobile"`
	Name         string        `json:"name"`
	Location     string        `json:"location"`
	PasswordHash string        `json:"password"`      // bcrypt hash
	RegisteredAt string        `json:"registered_at"` // RFC3339 timestamp
	Crops        []CropHolding `json:"crops"`
	Reminders    []Reminder    `json:"reminders"`
}

// CropHolding is a single planting owned by a user. Holdings are append-only.
type CropHolding struct {
	Name         string  `json:"name"`
	PlantingDate string  `json:"planting_date"` // YYYY-MM-DD
	AreaAcres    float64 `json:"area_acres"`
	AddedAt      string  `json:"added_at"` // RFC3339 timestamp
}

// Reminder is a free-form dated note. IDs are count+1 at insertion time and
// are only unique within the owning user's list.
type Reminder struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"` // RFC3339 timestamp
}

// Clone returns a deep copy so callers can mutate slices without touching the original.
func (u UserRecord) Clone() UserRecord {
	out := u
	if u.Crops != nil {
		out.Crops = append([]CropHolding(nil), u.Crops...)
	}
	if u.Reminders != nil {
		out.Reminders = append([]Reminder(nil), u.Reminders...)
	}
	return out
}

// NextReminderID returns the id the next appended reminder receives.
func (u UserRecord) NextReminderID() int {
	return len(u.Reminders) + 1
}
