package config

import (
	"time"

	"github.com/AlumniConnect/AlumniConnect/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration // lifetime of a signed session
	Secret     string        // HMAC key used to sign session claims
	CookieName string        // name of the session cookie
	Engine     string        // memory, mysql, postgres or redis
	Table      string        // table name for sql session engines
	Redis      Redis         // redis session engine settings
}

// Redis holds the redis connection settings for the session storage.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Auth holds settings of the bearer token gate.
type Auth struct {
	// DisableDemoAdmin turns off the demo admin sentinel token.
	DisableDemoAdmin bool
	// DemoAdminToken is the reserved bearer token mapped to the demo admin.
	DemoAdminToken string
	DemoAdminEmail string
	DemoAdminName  string
}

// Seed holds the bootstrap admin created on an empty user table.
type Seed struct {
	Enabled       bool
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}
