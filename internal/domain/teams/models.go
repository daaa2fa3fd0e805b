package teams

import (
	"fmt"
	"strings"
)

// Team represents the normalized team shape nested inside games and box score rows.
type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	City         string `json:"city"`
}

// DisplayName prefers the abbreviation, then the short name.
func (t Team) DisplayName() string {
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	if t.Name != "" {
		return t.Name
	}
	return "TEAM"
}

// HeaderName prefers the full name for detail headers.
func (t Team) HeaderName() string {
	if t.FullName != "" {
		return t.FullName
	}
	return t.Abbreviation
}

// LogoPath returns the static logo asset for the team, or "" when the abbreviation is unknown.
func (t Team) LogoPath() string {
	abbr := strings.ToLower(strings.TrimSpace(t.Abbreviation))
	if _, ok := knownAbbreviations[abbr]; !ok {
		return ""
	}
	return fmt.Sprintf("/logos/%s.svg", abbr)
}

var knownAbbreviations = map[string]struct{}{
	"atl": {}, "bos": {}, "bkn": {}, "cha": {}, "chi": {}, "cle": {},
	"dal": {}, "den": {}, "det": {}, "gsw": {}, "hou": {}, "ind": {},
	"lac": {}, "lal": {}, "mem": {}, "mia": {}, "mil": {}, "min": {},
	"nop": {}, "nyk": {}, "okc": {}, "orl": {}, "phi": {}, "phx": {},
	"por": {}, "sac": {}, "sas": {}, "tor": {}, "uta": {}, "was": {},
}
