// Package bot exposes the occasion engine as Discord chat commands.
package bot

import (
	"strings"
	"time"

	"github.com/tartampluch/go-occasions/internal/catalog"
	"github.com/tartampluch/go-occasions/internal/config"
)

// Occasions is the subset of the resolver the commands read from.
type Occasions interface {
	PrimaryGreeting(now time.Time) string
	Motivation(now time.Time) string
	StatusSummary(now time.Time) string
	MusicThemes(now time.Time) []string
	Features(now time.Time) []string
	ExamCountdown(now time.Time) string
	ExamTips(now time.Time) []string
	StudyPlan(now time.Time) string
	UpcomingEvents(now time.Time) []string
	AnniversaryInfo(now time.Time) string
}

type command func(now time.Time) string

// Router maps prefixed chat commands to occasion text.
type Router struct {
	prefix   string
	commands map[string]command
}

// NewRouter registers every command against occ.
func NewRouter(prefix string, occ Occasions, msgs *catalog.Catalog) *Router {
	if prefix == "" {
		prefix = config.DefaultBotPrefix
	}
	list := func(f func(time.Time) []string) command {
		return func(now time.Time) string {
			return bulletList(f(now))
		}
	}
	return &Router{
		prefix: prefix,
		commands: map[string]command{
			config.CmdGreet:       occ.PrimaryGreeting,
			config.CmdMotivate:    occ.Motivation,
			config.CmdStatus:      occ.StatusSummary,
			config.CmdCountdown:   occ.ExamCountdown,
			config.CmdPlan:        occ.StudyPlan,
			config.CmdAnniversary: occ.AnniversaryInfo,
			config.CmdFeatures:    list(occ.Features),
			config.CmdTips:        list(occ.ExamTips),
			config.CmdUpcoming:    list(occ.UpcomingEvents),
			config.CmdThemes: func(now time.Time) string {
				return config.ThemesPrefix + strings.Join(occ.MusicThemes(now), config.ThemesSeparator)
			},
			config.CmdHelp: func(time.Time) string {
				return msgs.Text(config.TKeyBotHelp, catalog.Data{"Prefix": prefix})
			},
		},
	}
}

// Handle answers content when it is a known command. Anything else,
// including unprefixed chatter, is ignored.
func (r *Router) Handle(content string, now time.Time) (string, bool) {
	name, ok := r.Parse(content)
	if !ok {
		return "", false
	}
	return truncate(r.commands[name](now), config.DiscordMaxMessage), true
}

// Parse extracts a known command name from content.
func (r *Router) Parse(content string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(content), r.prefix)
	if !ok {
		return "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	name := strings.ToLower(fields[0])
	if _, known := r.commands[name]; !known {
		return "", false
	}
	return name, true
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = config.BulletPrefix + item
	}
	return strings.Join(lines, config.LineSeparator)
}

// truncate cuts s to at most max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + config.Ellipsis
}
