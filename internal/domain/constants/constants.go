package constants

const (
	EnvDevelop    = "development"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Mail providers
const (
	MailProviderResend = "resend"
	MailProviderSMTP   = "smtp"
)

// Notifier dispatch modes
const (
	MailDispatchInline = "inline"
	MailDispatchQueue  = "queue"
)

// Pagination bounds shared by list endpoints
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)
