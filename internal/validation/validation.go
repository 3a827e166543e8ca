package validation

import (
	"fmt"
	"strings"

	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/utils"
)

// ConflictType classifies a problem found in stored user records.
type ConflictType string

const (
	ConflictUnknownCrop         ConflictType = "unknown_crop"
	ConflictInvalidPlantingDate ConflictType = "invalid_planting_date"
	ConflictNonPositiveArea     ConflictType = "non_positive_area"
	ConflictInvalidReminderDate ConflictType = "invalid_reminder_date"
	ConflictDuplicateReminderID ConflictType = "duplicate_reminder_id"
	ConflictEmptyReminderTitle  ConflictType = "empty_reminder_title"
	ConflictMobileMismatch      ConflictType = "mobile_mismatch"
	ConflictMissingPassword     ConflictType = "missing_password"
)

// Conflict is one finding. Unknown crops are warnings since they still
// project with the default schedule; everything else is an error.
type Conflict struct {
	Type        ConflictType
	Mobile      string
	Description string
	Warning     bool
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors reports whether any conflict is not a warning.
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if !c.Warning {
			return true
		}
	}
	return false
}

func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range vr.Conflicts {
		level := "error"
		if c.Warning {
			level = "warning"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s\n", level, c.Mobile, c.Description)
	}
	return b.String()
}

// Validator checks stored records against the crop catalog.
type Validator struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Validator {
	return &Validator{catalog: c}
}

// ValidateUsers checks every record.
func (v *Validator) ValidateUsers(users []models.UserRecord) ValidationResult {
	var result ValidationResult
	for _, u := range users {
		result.Conflicts = append(result.Conflicts, v.ValidateUser(u).Conflicts...)
	}
	return result
}

// ValidateUser checks one record.
func (v *Validator) ValidateUser(u models.UserRecord) ValidationResult {
	var result ValidationResult
	add := func(t ConflictType, warning bool, format string, args ...interface{}) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        t,
			Mobile:      u.Mobile,
			Description: fmt.Sprintf(format, args...),
			Warning:     warning,
		})
	}

	if u.PasswordHash == "" {
		add(ConflictMissingPassword, false, "user has no password hash")
	}

	for i, c := range u.Crops {
		if v.catalog != nil && !v.catalog.Has(c.Name) {
			add(ConflictUnknownCrop, true, "crop #%d %q is not in the catalog, %q schedule is used",
				i+1, c.Name, v.catalog.DefaultKey())
		}
		if _, err := utils.ParseDate(c.PlantingDate); err != nil {
			add(ConflictInvalidPlantingDate, false, "crop #%d %q has invalid planting date %q", i+1, c.Name, c.PlantingDate)
		}
		if !utils.ValidArea(c.AreaAcres) {
			add(ConflictNonPositiveArea, false, "crop #%d %q has area %g", i+1, c.Name, c.AreaAcres)
		}
	}

	seen := make(map[int]bool, len(u.Reminders))
	for _, r := range u.Reminders {
		if seen[r.ID] {
			add(ConflictDuplicateReminderID, false, "reminder id %d appears more than once", r.ID)
		}
		seen[r.ID] = true
		if strings.TrimSpace(r.Title) == "" {
			add(ConflictEmptyReminderTitle, false, "reminder %d has no title", r.ID)
		}
		if _, err := utils.ParseDate(r.Date); err != nil {
			add(ConflictInvalidReminderDate, false, "reminder %d has invalid date %q", r.ID, r.Date)
		}
	}
	return result
}

// ValidateDocumentKeys checks that every record's mobile matches the key it is stored under.
func (v *Validator) ValidateDocumentKeys(doc map[string]models.UserRecord) ValidationResult {
	var result ValidationResult
	for key, u := range doc {
		if u.Mobile != "" && u.Mobile != key {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMobileMismatch,
				Mobile:      key,
				Description: fmt.Sprintf("record stored under %s carries mobile %s", key, u.Mobile),
			})
		}
	}
	return result
}
