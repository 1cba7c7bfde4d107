package engine

import (
	"fmt"
	"time"

	jnow "github.com/jinzhu/now"
)

// Academic years (starting in autumn) covered by the compiled-in tables.
const (
	firstTableYear = 2024
	lastTableYear  = 2026
)

// day returns midnight UTC of the given date.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// span covers whole days: from the start of first to the end of last.
func span(first, last time.Time) (time.Time, time.Time) {
	return jnow.With(first).BeginningOfDay(), jnow.With(last).EndOfDay()
}

// SeasonalEventTable returns the seasonal event records in declared order.
func SeasonalEventTable() []Record {
	var out []Record
	for y := firstTableYear; y <= lastTableYear; y++ {
		out = append(out, seasonalEventsFor(y)...)
	}
	return out
}

// AcademicTermTable returns the academic term records in declared order.
func AcademicTermTable() []Record {
	var out []Record
	for y := firstTableYear; y <= lastTableYear; y++ {
		out = append(out, academicTermsFor(y)...)
	}
	return out
}

// seasonalEventsFor lists the events of the academic year starting in autumn y.
func seasonalEventsFor(y int) []Record {
	next := y + 1
	rec := func(id string, first, last time.Time, name, desc string, c Content) Record {
		start, end := span(first, last)
		return Record{ID: id, Name: name, Description: desc, Start: start, End: end, Content: c}
	}

	return []Record{
		rec(fmt.Sprintf("halloween-%d", y), day(y, time.October, 1), day(y, time.October, 31),
			"🎃 Halloween Study Spooktacular",
			"Spooky study sessions with ghostly motivation!",
			Content{
				Features: []string{
					"👻 Ghostly study reminders",
					"🎃 Pumpkin-themed flashcards",
					"🧛 Vampire-level focus sessions",
					"🦇 Bat-winged practice tests",
				},
				Greetings: []string{
					"🎃 **BOO!** gunnchAI3k is here to spook up your study game!",
					"👻 **Spooky Study Time!** Let's make your grades scream with success!",
					"🧛 **Vampire Mode Activated!** I'll suck the confusion out of your studies!",
				},
				Motivation: []string{
					"Don't let your grades be a horror story!",
					"Turn your study sessions into a thriller!",
					"Make your midterm performance legendary!",
				},
				Themes: []string{"spooky", "halloween", "thriller", "monster mash"},
			}),
		rec(fmt.Sprintf("thanksgiving-%d", y), day(y, time.November, 1), day(y, time.November, 30),
			"🦃 Thanksgiving Gratitude Study",
			"Grateful for knowledge, thankful for success!",
			Content{
				Features: []string{
					"🦃 Gratitude study journals",
					"🍂 Autumn-themed study sessions",
					"🥧 Pie-chart practice problems",
					"🦃 Turkey-level focus training",
				},
				Greetings: []string{
					"🦃 **Gobble Gobble!** Time to feast on knowledge!",
					"🍂 **Autumn Study Mode!** Let's harvest some A's!",
					"🥧 **Pie-chart Practice!** Let's make your grades as sweet as pie!",
				},
				Motivation: []string{
					"Be grateful for every study session!",
					"Thank yourself for putting in the work!",
					"Your future self will thank you!",
				},
				Themes: []string{"autumn", "grateful", "harvest", "thanksgiving"},
			}),
		rec(fmt.Sprintf("christmas-%d", y), day(y, time.December, 1), day(y, time.December, 31),
			"🎄 Christmas Study Wonderland",
			"Making your grades merry and bright!",
			Content{
				Features: []string{
					"🎄 Christmas tree study plans",
					"🎁 Gift-wrapped practice tests",
					"❄️ Snowflake flashcards",
					"🦌 Reindeer-powered study sessions",
				},
				Greetings: []string{
					"🎄 **Ho Ho Ho!** gunnchAI3k is here to make your grades merry!",
					"🎁 **Study Gifts Await!** Let's unwrap some knowledge!",
					"❄️ **Winter Wonderland Study!** Your grades will be snow-white perfect!",
				},
				Motivation: []string{
					"Make your grades as bright as Christmas lights!",
					"Give yourself the gift of knowledge!",
					"Your success is the best present!",
				},
				Themes: []string{"christmas", "winter", "holiday", "snow"},
			}),
		rec(fmt.Sprintf("spring-%d", next), day(next, time.March, 1), day(next, time.May, 31),
			"🌸 Spring Study Bloom",
			"Watch your knowledge bloom like spring flowers!",
			Content{
				Features: []string{
					"🌸 Cherry blossom study sessions",
					"🦋 Butterfly transformation study plans",
					"🌱 Growth mindset flashcards",
					"🐰 Bunny-hop practice tests",
				},
				Greetings: []string{
					"🌸 **Spring into Action!** Let's make your knowledge bloom!",
					"🦋 **Transformation Time!** From caterpillar to butterfly scholar!",
					"🌱 **Growth Season!** Watch your grades grow like spring flowers!",
				},
				Motivation: []string{
					"Bloom where you study!",
					"Spring into academic success!",
					"Your knowledge is blooming beautifully!",
				},
				Themes: []string{"spring", "bloom", "renewal", "growth"},
			}),
		rec(fmt.Sprintf("summer-%d", next), day(next, time.June, 1), day(next, time.August, 31),
			"☀️ Summer Study Adventure",
			"Hot study sessions for cool results!",
			Content{
				Features: []string{
					"🏖️ Beach-themed study sessions",
					"🌊 Wave-riding practice tests",
					"☀️ Sunshine motivation",
					"🏄‍♂️ Surfing through flashcards",
				},
				Greetings: []string{
					"☀️ **Summer Study Mode!** Let's make it hot with knowledge!",
					"🏖️ **Beach Study Time!** Your grades will be beach-perfect!",
					"🌊 **Ride the Wave!** Let's surf through your studies!",
				},
				Motivation: []string{
					"Make your study sessions sizzle!",
					"Hot study sessions, cool results!",
					"Your success is as bright as the sun!",
				},
				Themes: []string{"summer", "beach", "sunshine", "vacation"},
			}),
		// Declared after spring, so the spring window wins throughout May.
		rec(fmt.Sprintf("graduation-%d", next), day(next, time.May, 1), day(next, time.May, 31),
			"🎓 Graduation Celebration",
			"Celebrating academic achievements!",
			Content{
				Features: []string{
					"🎓 Cap and gown study sessions",
					"🏆 Achievement tracking",
					"🎉 Success celebrations",
					"📜 Diploma practice tests",
				},
				Greetings: []string{
					"🎓 **Graduation Season!** Let's celebrate your achievements!",
					"🏆 **Success Celebration!** Your hard work is paying off!",
					"📜 **Diploma Dreams!** Let's make them reality!",
				},
				Motivation: []string{
					"You're almost at the finish line!",
					"Your graduation cap is waiting!",
					"Success is your graduation gift!",
				},
				Themes: []string{"graduation", "celebration", "achievement", "success"},
			}),
	}
}

// academicTermsFor lists the terms of the academic year starting in autumn y.
func academicTermsFor(y int) []Record {
	next := y + 1
	rec := func(id string, first, last time.Time, name, desc string, c Content) Record {
		start, end := span(first, last)
		return Record{ID: id, Name: name, Description: desc, Start: start, End: end, Content: c}
	}

	return []Record{
		rec(fmt.Sprintf("fall-%d", y), day(y, time.August, 15), day(y, time.December, 15),
			fmt.Sprintf("🍂 Fall Semester %d", y),
			"Autumn studies with crisp focus and warm motivation!",
			Content{
				Season: SeasonFall,
				Features: []string{
					"🍂 Autumn-themed study sessions",
					"📚 Back-to-school motivation",
					"🎃 Halloween study breaks",
					"🦃 Thanksgiving gratitude studies",
				},
				Greetings: []string{
					"🍂 **Fall into Success!** Let's make this semester legendary!",
					"📚 **Back to School!** Time to show what you're made of!",
					"🎯 **Autumn Focus!** Your studies will be as crisp as fall leaves!",
				},
				Motivation: []string{
					"Fall into academic excellence!",
					"Your success is as beautiful as autumn leaves!",
					"Crisp focus, warm results!",
				},
				ExamTypes: []string{"Midterm Exams", "Final Exams", "Thanksgiving Break Prep"},
			}),
		rec(fmt.Sprintf("spring-%d", next), day(next, time.January, 15), day(next, time.May, 15),
			fmt.Sprintf("🌸 Spring Semester %d", next),
			"Spring into academic success with blooming knowledge!",
			Content{
				Season: SeasonSpring,
				Features: []string{
					"🌸 Spring renewal study sessions",
					"🌱 Growth mindset development",
					"🎓 Graduation preparation",
					"🌺 Blooming academic achievements",
				},
				Greetings: []string{
					"🌸 **Spring into Action!** Let's make this semester bloom!",
					"🌱 **Growth Season!** Watch your knowledge grow!",
					"🎓 **Graduation Prep!** Your future is blooming!",
				},
				Motivation: []string{
					"Bloom where you study!",
					"Spring into academic success!",
					"Your knowledge is blooming beautifully!",
				},
				ExamTypes: []string{"Midterm Exams", "Final Exams", "Graduation Prep"},
			}),
		rec(fmt.Sprintf("summer-%d", next), day(next, time.May, 20), day(next, time.August, 15),
			fmt.Sprintf("☀️ Summer Session %d", next),
			"Hot study sessions for cool summer results!",
			Content{
				Season: SeasonSummer,
				Features: []string{
					"☀️ Summer study sessions",
					"🏖️ Beach-themed learning",
					"🌊 Wave-riding through studies",
					"🏄‍♂️ Surfing through exams",
				},
				Greetings: []string{
					"☀️ **Summer Study Mode!** Let's make it hot with knowledge!",
					"🏖️ **Beach Study Time!** Your grades will be beach-perfect!",
					"🌊 **Ride the Wave!** Let's surf through your studies!",
				},
				Motivation: []string{
					"Make your study sessions sizzle!",
					"Hot study sessions, cool results!",
					"Your success is as bright as the sun!",
				},
				ExamTypes: []string{"Summer Midterms", "Summer Finals", "Summer Break Prep"},
			}),
	}
}

// seasonThemes maps an academic season onto extra music-theme tags.
var seasonThemes = map[Season][]string{
	SeasonFall:   {"autumn", "harvest", "thanksgiving"},
	SeasonSpring: {"spring", "bloom", "renewal"},
	SeasonSummer: {"summer", "beach", "sunshine"},
}

// Music-theme tags that do not come from a record.
var (
	baseThemes        = []string{"study", "focus", "motivation"}
	anniversaryThemes = []string{"celebration", "achievement", "success"}
)

// preparationTips is keyed by intensity tier.
var preparationTips = map[Intensity][]string{
	IntensityLow: {
		"📚 Start building good study habits early",
		"📝 Create a study schedule and stick to it",
		"🎯 Set small, achievable goals",
		"💪 Build your academic foundation",
	},
	IntensityMedium: {
		"⚡ Increase study intensity gradually",
		"📊 Track your progress regularly",
		"🎯 Focus on understanding concepts",
		"💡 Start reviewing past material",
	},
	IntensityHigh: {
		"🚨 Ramp up study sessions significantly",
		"📚 Focus on problem areas",
		"⏰ Increase study time per day",
		"🎯 Practice with past exams",
	},
	IntensityCritical: {
		"🔥 MAXIMUM STUDY MODE ACTIVATED!",
		"⚡ Study sessions every day!",
		"📚 Focus on high-impact topics",
		"🎯 Practice, practice, practice!",
		"💪 Push through to the finish line!",
	},
}

// defaultExamTips is served when no academic term is current.
var defaultExamTips = []string{
	"📚 Build strong study habits",
	"📝 Create a consistent schedule",
	"🎯 Set achievable goals",
	"💪 Stay motivated and focused",
}

// studyPlans is keyed by intensity tier: a heading and its bullet items.
var studyPlans = map[Intensity]struct {
	Heading string
	Items   []string
}{
	IntensityLow: {"🌱 **Early Semester Plan:**", []string{
		"Build strong foundations", "Develop good study habits", "Set achievable goals", "Stay consistent",
	}},
	IntensityMedium: {"⚡ **Mid-Semester Plan:**", []string{
		"Increase study intensity", "Review past material", "Practice problem-solving", "Stay organized",
	}},
	IntensityHigh: {"🚨 **Exam Season Plan:**", []string{
		"Intensive study sessions", "Focus on problem areas", "Practice with past exams", "Maintain work-life balance",
	}},
	IntensityCritical: {"🔥 **CRITICAL EXAM MODE:**", []string{
		"MAXIMUM STUDY EFFORT!", "Focus on high-impact topics", "Practice, practice, practice!", "Push through to success!",
	}},
}

// defaultFeatures is served when no occasion contributes features.
var defaultFeatures = []string{
	"🧠 Smart study assistance",
	"📚 Personalized learning plans",
	"🎯 Goal tracking and motivation",
	"💫 AI-powered study companion",
}

// anniversaryContent builds the payload for the given anniversary year.
func anniversaryContent(years int, org string) (greetings, features []string) {
	ord := Ordinal(years)
	greetings = []string{
		fmt.Sprintf("🎉 **Happy %s Anniversary %s!** 🎉", ord, org),
		fmt.Sprintf("🚀 **%d years of innovation!** Let's celebrate with stellar study sessions!", years),
		"🌟 **From startup to star!** Your academic journey is our success story!",
		"🎯 **Years of excellence!** Let's make this year your best academic year yet!",
	}
	features = []string{
		fmt.Sprintf("🎉 **%d Years Strong!** - Celebrating decades of innovation!", years),
		"🚀 **Rocket Launch Study Mode** - Blast off to academic success!",
		"🌟 **Star Student Recognition** - Celebrating academic achievements!",
		"🎯 **Precision Study Sessions** - Laser-focused learning!",
	}
	return greetings, features
}

// anniversaryAchievements and anniversaryGoals are shown with the
// anniversary details.
func anniversaryAchievements(founding time.Time, org, bot string) []string {
	return []string{
		fmt.Sprintf("Founded %s on %s", org, founding.Format("January 2, 2006")),
		fmt.Sprintf("Developed %s - The ultimate study companion", bot),
		"Created innovative study tools and AI assistance",
		"Built a community of academic achievers",
		"Launched multiple successful projects and collaborations",
	}
}

var anniversaryGoals = []string{
	"Continue revolutionizing education technology",
	"Expand AI-powered study assistance globally",
	"Develop next-generation learning tools",
	"Build stronger academic communities",
	"Create more innovative solutions for students",
}
