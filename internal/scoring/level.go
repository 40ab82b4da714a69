package scoring

// LevelInfo is the derived leveling state for a user.
type LevelInfo struct {
	Name         string `json:"name"`
	Next         string `json:"next"`
	PointsToNext int    `json:"points_to_next"`
	Ordinal      int    `json:"ordinal"`
}

type levelRule struct {
	name      string
	threshold int // inclusive lower bound on points+reputation
	ordinal   int
}

// Level thresholds, ascending. Highest matching threshold wins.
var levelRules = []levelRule{
	{"Beginner", 0, 1},
	{"Helper", 100, 2},
	{"Advanced Helper", 500, 3},
	{"Expert Helper", 1000, 4},
	{"Master Contributor", 2000, 5},
	{"Legend", 5000, 6},
}

// UserLevel maps a user's points and reputation to a level. The top level's
// "next" is itself with zero points to go.
func UserLevel(points, reputation int) LevelInfo {
	totalScore := points + reputation

	idx := 0
	for i, rule := range levelRules {
		if totalScore >= rule.threshold {
			idx = i
		}
	}

	rule := levelRules[idx]
	info := LevelInfo{
		Name:    rule.name,
		Ordinal: rule.ordinal,
	}

	if idx == len(levelRules)-1 {
		info.Next = rule.name
		info.PointsToNext = 0
		return info
	}

	next := levelRules[idx+1]
	info.Next = next.name
	info.PointsToNext = next.threshold - totalScore
	return info
}
