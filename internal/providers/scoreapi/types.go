package scoreapi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// flexID accepts an upstream id sent as either a JSON number or a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type gameResponse struct {
	ID               flexID                `json:"id"`
	Date             string                `json:"date"`
	Datetime         string                `json:"datetime"`
	Status           string                `json:"status"`
	Period           int                   `json:"period"`
	HomeTeam         teamResponse          `json:"home_team"`
	VisitorTeam      teamResponse          `json:"visitor_team"`
	HomeTeamScore    *int                  `json:"home_team_score"`
	VisitorTeamScore *int                  `json:"visitor_team_score"`
	PeriodScores     []periodScoreResponse `json:"period_scores"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
}

type periodScoreResponse struct {
	PeriodName   string `json:"period_name"`
	HomeScore    *int   `json:"home_score"`
	VisitorScore *int   `json:"visitor_score"`
}

type liveScoreResponse struct {
	ID               flexID `json:"id"`
	HomeTeamScore    *int   `json:"home_team_score"`
	VisitorTeamScore *int   `json:"visitor_team_score"`
	Status           string `json:"status"`
	Period           int    `json:"period"`
}

type statLineResponse struct {
	Player playerResponse `json:"player"`
	Team   teamResponse   `json:"team"`
	Min    *string        `json:"min"`
	Pts    *int           `json:"pts"`
	Reb    *int           `json:"reb"`
	Ast    *int           `json:"ast"`
	Fgm    *int           `json:"fgm"`
	Fga    *int           `json:"fga"`
	FgPct  *float64       `json:"fg_pct"`
}

type playerResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type winProbabilityResponse struct {
	Home    float64 `json:"home_win_probability"`
	Visitor float64 `json:"visitor_win_probability"`
}
