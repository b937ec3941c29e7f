package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100MB"
	defaultAPIPrefix          = "/api"
	defaultAccessExpiryHours  = 24
	defaultRefreshExpiryDays  = 30
	defaultJWTAlgorithm       = "HS256"
	defaultBcryptCost         = 12
	defaultMinPasswordLength  = 8
	defaultRateLimitPerMinute = 60
	defaultStripeTimeout      = 10 * time.Second
	defaultEmailTimeout       = 15 * time.Second
	defaultCurrency           = "usd"

	envProduction = "production"
)

// legacyEnvAliases maps variable names used by existing deployments onto
// koanf paths that canonicalizeEnvKey cannot derive from the YAML layout.
//
//nolint:gochecknoglobals
var legacyEnvAliases = map[string]string{
	"APP_ENV":               "env.env",
	"JWT_SECRET_KEY":        "jwt.secret",
	"JWT_ALGORITHM":         "jwt.algorithm",
	"JWT_EXPIRATION_HOURS":  "jwt.accessExpiryHours",
	"STRIPE_API_KEY":        "stripe.apiKey",
	"STRIPE_WEBHOOK_SECRET": "stripe.webhookSecret",
	"RESEND_API_KEY":        "email.resendApiKey",
	"SENDER_EMAIL":          "email.senderAddress",
	"FROM_NAME":             "email.fromName",
	"CORS_ORIGINS":          "http.cors.allowedOrigins",
	"ADMIN_EMAIL":           "admin.email",
	"ADMIN_PASSWORD":        "admin.password",
	"ADMIN_USERNAME":        "admin.username",
	"RATE_LIMIT_PER_MINUTE": "rateLimit.perMinute",
	"FRONTEND_URL":          "stripe.frontendUrl",
	"REDIS_URL":             "redis.addr",
}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Version     string `json:"version" yaml:"version"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		APIPrefix          string `json:"apiPrefix" yaml:"apiPrefix"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		CORS struct {
			AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
		} `json:"cors" yaml:"cors"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Migration struct {
		AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
	} `json:"migration" yaml:"migration"`

	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	Admin AdminConfig `json:"admin" yaml:"admin"`

	Stripe StripeConfig `json:"stripe" yaml:"stripe"`

	Email EmailConfig `json:"email" yaml:"email"`

	// Redis backs the logout denylist and the rate limiter; both are disabled when Addr is empty.
	Redis RedisConfig `json:"redis" yaml:"redis"`

	RateLimit RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	Ministry MinistryConfig `json:"ministry" yaml:"ministry"`

	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub carries queued mail events to the mail worker
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// JWTConfig defines token signing configuration
type JWTConfig struct {
	Secret            string `json:"secret" yaml:"secret"`
	Algorithm         string `json:"algorithm" yaml:"algorithm"`
	AccessExpiryHours int    `json:"accessExpiryHours" yaml:"accessExpiryHours"`
	RefreshExpiryDays int    `json:"refreshExpiryDays" yaml:"refreshExpiryDays"`
}

// AccessTTL returns the access token lifetime.
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessExpiryHours) * time.Hour
}

// RefreshTTL returns the refresh token lifetime.
func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshExpiryDays) * 24 * time.Hour
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int `json:"bcryptCost" yaml:"bcryptCost"`
	MinPasswordLength int `json:"minPasswordLength" yaml:"minPasswordLength"`
}

// AdminConfig describes the bootstrap administrator created at startup
type AdminConfig struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Username string `json:"username" yaml:"username"`
}

// StripeConfig defines the payment provider configuration
type StripeConfig struct {
	APIKey          string        `json:"apiKey" yaml:"apiKey"`
	WebhookSecret   string        `json:"webhookSecret" yaml:"webhookSecret"`
	FrontendURL     string        `json:"frontendUrl" yaml:"frontendUrl"`
	DefaultCurrency string        `json:"defaultCurrency" yaml:"defaultCurrency"`
	Timeout         time.Duration `json:"timeout" yaml:"timeout"`
}

// EmailConfig defines outbound mail configuration
type EmailConfig struct {
	// Provider is "resend", "smtp" or empty for log-only delivery
	Provider      string        `json:"provider" yaml:"provider"`
	// Dispatch is "inline" or "queue"
	Dispatch      string        `json:"dispatch" yaml:"dispatch"`
	ResendAPIKey  string        `json:"resendApiKey" yaml:"resendApiKey"`
	SenderAddress string        `json:"senderAddress" yaml:"senderAddress"`
	FromName      string        `json:"fromName" yaml:"fromName"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	SMTP          SMTPConfig    `json:"smtp" yaml:"smtp"`
}

// SMTPConfig defines an SMTP relay reached over STARTTLS
type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Prefix   string `json:"prefix" yaml:"prefix"`
}

type RateLimitConfig struct {
	Enabled   bool `json:"enabled" yaml:"enabled"`
	PerMinute int  `json:"perMinute" yaml:"perMinute"`
}

// StorageConfig defines where uploaded resource files are written
type StorageConfig struct {
	// BucketURL is a gocloud.dev blob URL, e.g. file:///var/lib/ministry/uploads or gs://bucket
	BucketURL        string   `json:"bucketUrl" yaml:"bucketUrl"`
	PublicBaseURL    string   `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	MaxUploadSizeMB  int64    `json:"maxUploadSizeMb" yaml:"maxUploadSizeMb"`
	AllowedFileTypes []string `json:"allowedFileTypes" yaml:"allowedFileTypes"`
}

// MinistryConfig is the public contact record served by /ministry/info
type MinistryConfig struct {
	Name      string  `json:"name" yaml:"name"`
	Slogan    string  `json:"slogan" yaml:"slogan"`
	Email     string  `json:"email" yaml:"email"`
	Phone     string  `json:"phone" yaml:"phone"`
	WhatsApp  string  `json:"whatsapp" yaml:"whatsapp"`
	Address   string  `json:"address" yaml:"address"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Scripture string  `json:"scripture" yaml:"scripture"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// IsProduction reports whether the service runs with production error rendering.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env.Env, envProduction)
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			key := resolveEnvKey(k, existingConfigMap)
			if isListKey(key) {
				return key, splitList(v)
			}

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the API configuration and fails on missing secrets.
func New() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewWorker loads the configuration for the mail worker, which needs neither
// the token secret nor the payment keys.
func NewWorker() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.HTTP.APIPrefix == "" {
		c.HTTP.APIPrefix = defaultAPIPrefix
	}
	if c.JWT.Algorithm == "" {
		c.JWT.Algorithm = defaultJWTAlgorithm
	}
	if c.JWT.AccessExpiryHours <= 0 {
		c.JWT.AccessExpiryHours = defaultAccessExpiryHours
	}
	if c.JWT.RefreshExpiryDays <= 0 {
		c.JWT.RefreshExpiryDays = defaultRefreshExpiryDays
	}
	if c.Auth.BcryptCost <= 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
	if c.Auth.MinPasswordLength <= 0 {
		c.Auth.MinPasswordLength = defaultMinPasswordLength
	}
	if c.RateLimit.PerMinute <= 0 {
		c.RateLimit.PerMinute = defaultRateLimitPerMinute
	}
	if c.Stripe.Timeout <= 0 {
		c.Stripe.Timeout = defaultStripeTimeout
	}
	if c.Stripe.DefaultCurrency == "" {
		c.Stripe.DefaultCurrency = defaultCurrency
	}
	if c.Email.Timeout <= 0 {
		c.Email.Timeout = defaultEmailTimeout
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "Administrator"
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.JWT.Secret) == "" {
		missing = append(missing, "jwt.secret")
	}
	if strings.TrimSpace(c.Stripe.APIKey) == "" {
		missing = append(missing, "stripe.apiKey")
	}
	if strings.TrimSpace(c.Stripe.WebhookSecret) == "" {
		missing = append(missing, "stripe.webhookSecret")
	}
	if c.IsProduction() && strings.TrimSpace(c.Admin.Email) == "" {
		missing = append(missing, "admin.email")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return errors.Errorf("unsupported jwt algorithm: %s", c.JWT.Algorithm)
	}

	return nil
}

// resolveEnvKey prefers a legacy alias and otherwise aligns the variable with existing YAML keys.
func resolveEnvKey(rawKey string, existing map[string]any) string {
	if alias, ok := legacyEnvAliases[strings.ToUpper(rawKey)]; ok {
		return alias
	}

	return canonicalizeEnvKey(rawKey, existing)
}

func isListKey(key string) bool {
	return key == "http.cors.allowedOrigins" || key == "storage.allowedFileTypes"
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
