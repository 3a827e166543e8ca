package constants

const (
	AppName            = "krishi"
	DefaultKeyringUser = "database-connection"
	DefaultStorePath   = "~/.config/krishi/users.json"
	Version            = "v0.3.0"

	// DateFormat is the calendar date layout used for planting and reminder dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the layout for registered_at, added_at and created_at
	TimestampFormat = "2006-01-02T15:04:05Z07:00"

	// DefaultCropKey is the catalog entry used when a crop name is not in the catalog
	DefaultCropKey = "Rice (Paddy)"

	// DefaultWindowDays is the look-ahead used for "upcoming tasks" when none is given
	DefaultWindowDays = 7

	// Backup constants
	MaxBackups    = 14
	BackupDirName = "backups"

	// Keyring users for third-party API keys
	KeyringWeatherUser = "openweather-api-key"
	KeyringGeminiUser  = "gemini-api-key"
	KeyringNewsUser    = "news-api-key"

	// Task titles
	FertilizerTaskSuffix = "Fertilizer Application"
	StageTaskSuffix      = "Complete"

	DefaultLanguage = "en"
	DefaultRegion   = "Kerala"
)

// Languages maps the supported language codes to the names used in AI prompts.
var Languages = map[string]string{
	"en": "English",
	"ml": "Malayalam",
	"hi": "Hindi",
	"mr": "Marathi",
}
