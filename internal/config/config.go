package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the Discord client and HTTP responses.
var UserAgent = "Go-Occasions/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Occasions"
	AppID             = "com.github.tartampluch.go-occasions"
	KeyringService    = "com.github.tartampluch.go-occasions"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"

	// BotName and OrgName appear verbatim in generated greetings.
	BotName = "gunnchAI3k"
	OrgName = "gunnchos LLC-S"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagOnce         = "once"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to the YAML settings file"
	FlagDescOnce     = "Print the current occasion status and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	DefaultConfigRel = "settings.yaml"
)

// -----------------------------------------------------------------------------
// Occasion Domain
// -----------------------------------------------------------------------------

const (
	// FoundingDate is the anniversary anchor (YYYY-MM-DD, UTC).
	FoundingDate = "2022-10-23"

	// Upcoming list sizes used by the resolver.
	UpcomingSeasonalLimit = 3
	UpcomingAcademicLimit = 2

	// Intensity breakpoints on the elapsed fraction of an academic term.
	IntensityLowBelow    = 0.3
	IntensityMediumBelow = 0.6
	IntensityHighBelow   = 0.8

	// Countdown tiers (inclusive upper bounds, in whole days).
	TermFinalWeekDays   = 7
	TermTwoWeeksDays    = 14
	TermMonthDays       = 30
	AnniversarySoonDays = 30
	DaysPerYearApprox   = 365

	// BulletPrefix and SectionSeparator are display contracts of the
	// rendering collaborators.
	BulletPrefix     = "• "
	SectionSeparator = "\n\n"
	LineSeparator    = "\n"

	// DateFormatUpcoming mirrors the short US date used in upcoming lists.
	DateFormatUpcoming = "1/2/2006"
	DateFormatTable    = "2006-01-02"
)

// Occasion kinds, in precedence order.
const (
	KindAnniversary = "anniversary"
	KindSeasonal    = "seasonal"
	KindAcademic    = "academic"
	KindNone        = "none"
)

// -----------------------------------------------------------------------------
// Message Catalog Keys (I18n)
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"

	TKeyDefaultGreeting    = "default_greeting"
	TKeyDefaultMotivation  = "default_motivation"
	TKeyDefaultStudyPlan   = "default_study_plan"
	TKeyStatusNone         = "status_none"
	TKeyStatusAnniversary  = "status_anniversary"  // Requires Name, Years
	TKeyStatusSeasonal     = "status_seasonal"     // Requires Name, Description
	TKeyStatusAcademic     = "status_academic"     // Requires Name, Intensity
	TKeyMotivationLine     = "motivation_line"     // Requires Name, Line
	TKeyMotivationAnniv    = "motivation_anniversary"
	TKeyHeaderSeasonal     = "header_seasonal_features"
	TKeyHeaderAcademic     = "header_academic_features"
	TKeyHeaderAnniversary  = "header_anniversary_features"
	TKeyHeaderAchievements = "header_achievements"
	TKeyHeaderGoals        = "header_future_goals"
	TKeyAnnivTitle         = "anniversary_title"       // Requires Years, Suffix
	TKeyAnnivDescription   = "anniversary_description" // Requires Years, Org
	TKeyAnnivToday         = "anniversary_countdown_today"
	TKeyAnnivSoon          = "anniversary_countdown_soon" // Requires Days
	TKeyAnnivLong          = "anniversary_countdown_long" // Requires Years, Days
	TKeyTermDone           = "term_countdown_done"
	TKeyTermFinalWeek      = "term_countdown_final_week" // Requires Days
	TKeyTermTwoWeeks       = "term_countdown_two_weeks"  // Requires Days
	TKeyTermMonth          = "term_countdown_month"      // Requires Days
	TKeyTermLong           = "term_countdown_long"       // Requires Days
	TKeyTermNone           = "term_countdown_none"
	TKeyStudyPlanTitle     = "study_plan_title" // Requires Name
	TKeyUpcomingSeasonal   = "upcoming_seasonal"    // Requires Name, Date
	TKeyUpcomingAcademic   = "upcoming_academic"    // Requires Name, Date
	TKeyUpcomingAnniv      = "upcoming_anniversary" // Requires Days
	TKeyBotHelp            = "bot_help"             // Requires Prefix
)

// RequiredMessages lists every catalog key the engine renders.
// Construction fails when any of them is missing from the bundle.
var RequiredMessages = []string{
	TKeyDefaultGreeting, TKeyDefaultMotivation, TKeyDefaultStudyPlan,
	TKeyStatusNone, TKeyStatusAnniversary, TKeyStatusSeasonal, TKeyStatusAcademic,
	TKeyMotivationLine, TKeyMotivationAnniv,
	TKeyHeaderSeasonal, TKeyHeaderAcademic, TKeyHeaderAnniversary,
	TKeyHeaderAchievements, TKeyHeaderGoals,
	TKeyAnnivTitle, TKeyAnnivDescription, TKeyAnnivToday, TKeyAnnivSoon, TKeyAnnivLong,
	TKeyTermDone, TKeyTermFinalWeek, TKeyTermTwoWeeks, TKeyTermMonth, TKeyTermLong, TKeyTermNone,
	TKeyStudyPlanTitle,
	TKeyUpcomingSeasonal, TKeyUpcomingAcademic, TKeyUpcomingAnniv,
}

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort        = "18080"
	DefaultRefreshCron = "0 * * * *"
	DefaultLogLevel    = "info"
	DefaultBotPrefix   = "!"
	UIDSalt            = "go-occasions-v1-" // Salt for deterministic UID generation
	EnvDiscordToken    = "GO_OCCASIONS_DISCORD_TOKEN"
	DefaultKeyringUser = "discord"
)

// -----------------------------------------------------------------------------
// Discord Commands
// -----------------------------------------------------------------------------

const (
	CmdGreet       = "greet"
	CmdMotivate    = "motivate"
	CmdStatus      = "status"
	CmdThemes      = "themes"
	CmdFeatures    = "features"
	CmdCountdown   = "countdown"
	CmdTips        = "tips"
	CmdPlan        = "plan"
	CmdUpcoming    = "upcoming"
	CmdAnniversary = "anniversary"
	CmdHelp        = "help"

	// DiscordMaxMessage is the API limit on message length, in runes.
	DiscordMaxMessage  = 2000
	DiscordTokenPrefix = "Bot "
	ThemesPrefix       = "🎵 **Music Themes:** "
	ThemesSeparator    = ", "
	Ellipsis           = "…"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Occasions//Engine//EN"
	ICalCalName = "Occasions"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gooccasions"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRRule       = "RRULE"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour

	// FormatAnnivSummary expects the organization name.
	FormatAnnivSummary = "🎉 %s Anniversary"

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	AddrSeparator      = ":"

	RouteCalendar   = "/calendar.ics"
	RouteStatus     = "/status"
	RouteGreeting   = "/greeting"
	RouteMotivation = "/motivation"
	RouteThemes     = "/themes"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderServer          = "Server"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrLocaleMissing   = "catalog message missing"
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsParse   = "failed to parse settings file"
	ErrSettingsInvalid = "invalid settings"
	ErrCronSpec        = "invalid refresh schedule"
	ErrLogLevel        = "unknown log level"
	ErrTableInvalid    = "occasion table rejected"
	ErrFoundingDate    = "invalid founding date"
	ErrRecurrence      = "failed to build anniversary recurrence"
	ErrCatalog         = "message catalog unavailable"
	ErrBotToken        = "discord token not configured"
	ErrBotSession      = "failed to open discord session"
	ErrBotSend         = "failed to send discord reply"
	ErrRefresh         = "calendar refresh failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgTablesLoaded  = "Occasion tables loaded"
	MsgSourceAdded   = "Occasion source registered"
	MsgGenSuccess    = "Calendar generation successful"
	MsgWorkerStart   = "Refresh worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgRefreshDone   = "Calendar refreshed"
	MsgRefreshFailed = "Calendar refresh failed, previous feed kept"
	MsgSettingsMiss  = "Settings file not found, using defaults"
	MsgBotStart      = "Discord bot connected"
	MsgBotStop       = "Discord bot disconnected"
	MsgBotCommand    = "Discord command handled"
	MsgBotDisabled   = "Discord bot disabled"
	MsgPassFail      = "Keyring lookup failed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeySchedule  = "schedule"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyKind      = "kind"
	LogKeyPath      = "path"
	LogKeyCommand   = "command"
	LogKeyChannel   = "channel"
	LogKeyActive    = "active"
	LogKeyEvents    = "events"
	LogKeySeasonal  = "seasonal_records"
	LogKeyAcademic  = "academic_records"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompExport   = "export"
	CompServer   = "server"
	CompWorker   = "worker"
	CompBot      = "bot"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
