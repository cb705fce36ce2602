package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string // postgres only
	Path       string // sqlite only, file path or ":memory:"
	GormEngine string
	LogLevel   string // silent, error, warn or info
}
