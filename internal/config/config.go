package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	Database     Database     `envPrefix:"DATABASE_"`
	Redis        Redis        `envPrefix:"REDIS_"`
	Session      Session      `envPrefix:"SESSION_"`
	Backend      Backend      `envPrefix:"MOVIEMART_API_"`
	Cashfree     Cashfree     `envPrefix:"CASHFREE_"`
	Razorpay     Razorpay     `envPrefix:"RAZORPAY_"`
	CCAvenue     CCAvenue     `envPrefix:"CCAVENUE_"`
	Verification Verification `envPrefix:"VERIFY_"`
	Assets       Assets       `envPrefix:"ASSETS_"`
	Janitor      Janitor      `envPrefix:"JANITOR_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
	// browser origins allowed to send the session cookie; empty allows any origin without credentials
	AllowOrigins []string `env:"HTTP_CORS_ORIGINS" envSeparator:","`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql
	URL    string `env:"URL" envDefault:"moviemart.db"`
}

type Redis struct {
	URL string `env:"URL" envDefault:"redis://localhost:6379/0"`
}

// Session selects where resumable checkout state lives.
type Session struct {
	Backend string        `env:"BACKEND" envDefault:"gorm"` // gorm, redis
	TTL     time.Duration `env:"TTL" envDefault:"72h"`
}

type Backend struct {
	BaseURL string        `env:"BASE_URL,required"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type Cashfree struct {
	Mode      string `env:"MODE" envDefault:"sandbox"` // sandbox, production
	ScriptURL string `env:"SCRIPT_URL" envDefault:"https://sdk.cashfree.com/js/v3/cashfree.js"`
}

type Razorpay struct {
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
	ScriptURL  string `env:"SCRIPT_URL" envDefault:"https://checkout.razorpay.com/v1/checkout.js"`
	ThemeColor string `env:"THEME_COLOR" envDefault:"#e50914"`
	StoreName  string `env:"STORE_NAME" envDefault:"MovieMart"`
}

type CCAvenue struct {
	GatewayURL string `env:"GATEWAY_URL" envDefault:"https://secure.ccavenue.com/transaction/transaction.do?command=initiateTransaction"`
}

// Verification controls the pending-payment polling loop.
type Verification struct {
	Delay         time.Duration `env:"DELAY" envDefault:"3s"`
	VideoAttempts int           `env:"VIDEO_ATTEMPTS" envDefault:"5"`
	EventAttempts int           `env:"EVENT_ATTEMPTS" envDefault:"5"`
}

type Assets struct {
	Dir string `env:"DIR" envDefault:"assets"`
}

type Janitor struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"15m"`
	FlowTTL  time.Duration `env:"FLOW_TTL" envDefault:"24h"`
}
