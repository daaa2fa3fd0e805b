package gamestatus

import (
	"regexp"
	"strings"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
)

// Side identifies one team of a matchup.
type Side string

const (
	SideNone    Side = ""
	SideHome    Side = "home"
	SideVisitor Side = "visitor"
)

// Clock times ("7:00 PM ET"), ISO datetimes, TBD and PPD all mean the game has not tipped off.
var notStarted = regexp.MustCompile(`(?i)^(\d{1,2}:\d{2}(\s*[ap]\.?m\.?)?(\s+[a-z]{1,4})?|\d{4}-\d{2}-\d{2}t\S*|tbd|ppd)$`)

// ShowScores reports whether scores are meaningful for the classification.
func ShowScores(c Classification) bool {
	return c.Kind == KindFinal || c.Kind == KindLive
}

// DecideWinner returns the winning side of a Final game with both scores present.
// Ties and every non-final state yield SideNone.
func DecideWinner(g games.Game, c Classification) Side {
	if c.Kind != KindFinal || g.HomeTeamScore == nil || g.VisitorTeamScore == nil {
		return SideNone
	}
	switch home, visitor := *g.HomeTeamScore, *g.VisitorTeamScore; {
	case home > visitor:
		return SideHome
	case visitor > home:
		return SideVisitor
	default:
		return SideNone
	}
}

// Dimmed reports whether side renders at reduced emphasis: the loser of a decided Final game.
func Dimmed(side, winner Side, c Classification) bool {
	return c.Kind == KindFinal && winner != SideNone && side != winner
}

// Started reports whether the game has tipped off according to its period or status text.
// An empty status does not match a not-yet-started pattern and therefore counts as started.
func Started(g games.Game) bool {
	if g.Period > 0 {
		return true
	}
	return !notStarted.MatchString(strings.TrimSpace(g.Status))
}

// Upcoming gates the win-probability fetch: neither Final nor started.
func Upcoming(g games.Game) bool {
	return !IsFinalStatus(g.Status) && !Started(g)
}
