package scoring

import (
	"strings"
	"time"
)

// BadgeSnapshot is the aggregate activity a badge decision is made from.
type BadgeSnapshot struct {
	Points               int
	Reputation           int
	QuestionsCount       int
	AnswersCount         int
	AcceptedAnswersCount int
	CreatedAt            time.Time
}

// BadgeDefinition pairs a badge with its earning predicate. Definitions are
// evaluated independently: no ordering, no mutual exclusion.
type BadgeDefinition struct {
	Name        string
	Description string
	Icon        string
	Earned      func(BadgeSnapshot) bool
}

// BadgeStatus is the evaluation result for one badge.
type BadgeStatus struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

const veteranDays = 30

// BadgeDefinitions is the fixed badge registry.
var BadgeDefinitions = []BadgeDefinition{
	{
		Name:        "First Answer",
		Description: "Posted your first answer",
		Icon:        "Star",
		Earned:      func(s BadgeSnapshot) bool { return s.AnswersCount >= 1 },
	},
	{
		Name:        "Quick Responder",
		Description: "Answered 5 questions",
		Icon:        "Zap",
		Earned:      func(s BadgeSnapshot) bool { return s.AnswersCount >= 5 },
	},
	{
		Name:        "Problem Solver",
		Description: "Earned 100+ reputation",
		Icon:        "Award",
		Earned:      func(s BadgeSnapshot) bool { return s.Reputation >= 100 },
	},
	{
		Name:        "Top Helper",
		Description: "Answered 20+ questions",
		Icon:        "Crown",
		Earned:      func(s BadgeSnapshot) bool { return s.AnswersCount >= 20 },
	},
	{
		Name:        "Mentor",
		Description: "Earned 500+ reputation",
		Icon:        "Heart",
		Earned:      func(s BadgeSnapshot) bool { return s.Reputation >= 500 },
	},
	{
		Name:        "Expert",
		Description: "Earned 1000+ reputation",
		Icon:        "Trophy",
		Earned:      func(s BadgeSnapshot) bool { return s.Reputation >= 1000 },
	},
	{
		Name:        "First Question",
		Description: "Asked your first question",
		Icon:        "HelpCircle",
		Earned:      func(s BadgeSnapshot) bool { return s.QuestionsCount >= 1 },
	},
	{
		Name:        "Curious Mind",
		Description: "Asked 10 questions",
		Icon:        "BookOpen",
		Earned:      func(s BadgeSnapshot) bool { return s.QuestionsCount >= 10 },
	},
	{
		Name:        "Answer Master",
		Description: "Had 5 answers accepted",
		Icon:        "CheckCircle",
		Earned:      func(s BadgeSnapshot) bool { return s.AcceptedAnswersCount >= 5 },
	},
	{
		Name:        "Veteran",
		Description: "Active member for 30+ days",
		Icon:        "Calendar",
		Earned: func(s BadgeSnapshot) bool {
			return time.Since(s.CreatedAt) >= veteranDays*24*time.Hour
		},
	},
}

// EvaluateBadges runs the full registry against a snapshot.
func EvaluateBadges(s BadgeSnapshot) []BadgeStatus {
	statuses := make([]BadgeStatus, 0, len(BadgeDefinitions))
	for _, def := range BadgeDefinitions {
		statuses = append(statuses, BadgeStatus{
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Earned:      def.Earned(s),
		})
	}
	return statuses
}

// EarnedBadgeNames returns the names of all currently earned badges.
func EarnedBadgeNames(s BadgeSnapshot) []string {
	var names []string
	for _, def := range BadgeDefinitions {
		if def.Earned(s) {
			names = append(names, def.Name)
		}
	}
	return names
}

// ParseBadges splits the stored comma-delimited badge set.
func ParseBadges(stored string) []string {
	if stored == "" {
		return nil
	}
	var badges []string
	for _, b := range strings.Split(stored, ",") {
		if b = strings.TrimSpace(b); b != "" {
			badges = append(badges, b)
		}
	}
	return badges
}

// StringifyBadges joins a badge set back into storage form.
func StringifyBadges(badges []string) string {
	return strings.Join(badges, ",")
}

// MergeBadges unions stored badges with newly earned ones. Stored badges are
// never removed, even if the evaluator would no longer grant them. The second
// return value lists only the additions.
func MergeBadges(stored string, earned []string) (string, []string) {
	current := ParseBadges(stored)
	have := make(map[string]bool, len(current))
	for _, b := range current {
		have[b] = true
	}

	var added []string
	for _, b := range earned {
		if !have[b] {
			have[b] = true
			current = append(current, b)
			added = append(added, b)
		}
	}

	return StringifyBadges(current), added
}
