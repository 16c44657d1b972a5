// Package model contains domain types passed between layers.
package model

import "time"

// Known ranking types. Each maintains its own previous-rank history.
const (
	RankingValue      = "value"
	RankingActivation = "activation"
	RankingGeneral    = "general"
)

// Activated is the exact upstream literal that marks an event as an
// activation. Anything else, including "Não Ativação", does not count.
const Activated = "Ativação"

// Field aliases. Upstream schema versions disagree on column names, so each
// logical field is looked up by an ordered alias list, first match wins.
var (
	FieldBroker     = []string{"Nome", "Broker"}
	FieldDate       = []string{"Data"}
	FieldDeposit    = []string{"Valor Depósito", "Depósito"}
	FieldActivation = []string{"Ativação?", "Ativação"}
)

// Raw is one upstream deposit/activation row as decoded from JSON.
// Values are strings or numbers depending on the schema version.
type Raw map[string]any

// Lookup returns the first non-nil value among the given field aliases.
func (r Raw) Lookup(aliases []string) any {
	for _, key := range aliases {
		if v, ok := r[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// StringField returns the first matching alias value rendered as a string,
// or "" when no alias is present or the value is not a string.
func (r Raw) StringField(aliases []string) string {
	if s, ok := r.Lookup(aliases).(string); ok {
		return s
	}
	return ""
}

// Enriched is a Raw row plus the derivations made once per filter pass.
// ParsedDate is nil when the raw date was absent or malformed.
type Enriched struct {
	Raw        Raw
	ParsedDate *time.Time
	Team       string
}

// BrokerAggregate is the per-broker fold over one filtered event set.
// A fresh map of these is built on every aggregation pass.
type BrokerAggregate struct {
	BrokerName      string  `json:"broker_name"` // canonical short name, the aggregation key
	FullName        string  `json:"full_name"`   // raw name as first seen
	Team            string  `json:"team"`
	TotalDeposit    float64 `json:"total_deposit"`
	ActivationCount int     `json:"activation_count"`
	GeneralScore    float64 `json:"general_score"`
}

// TeamKPI is the per-team fold over one filtered event set.
type TeamKPI struct {
	TotalDeposit    float64 `json:"total_deposit"`
	ActivationCount int     `json:"activation_count"`
	MemberCount     int     `json:"member_count"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// Rankings holds the three independently sorted views over one aggregate set.
// The slices share the underlying aggregates.
type Rankings struct {
	ByValue      []*BrokerAggregate `json:"value_ranking"`
	ByActivation []*BrokerAggregate `json:"activation_ranking"`
	ByGeneral    []*BrokerAggregate `json:"general_ranking"`
}

// View returns the ranking slice for the given ranking type,
// defaulting to the value ranking for unknown types.
func (r Rankings) View(rankingType string) []*BrokerAggregate {
	switch rankingType {
	case RankingActivation:
		return r.ByActivation
	case RankingGeneral:
		return r.ByGeneral
	default:
		return r.ByValue
	}
}

// RankChange describes a broker's movement between two consecutive cycles.
// Change is always a magnitude; Indicator carries the direction.
type RankChange struct {
	Indicator string `json:"indicator"` // "up", "down", or "stable"
	Class     string `json:"class"`     // presentation hint: rank-up, rank-down, rank-stable
	Change    int    `json:"change"`
	IsNew     bool   `json:"is_new"`
}

// PeriodOption is one month/year filter choice offered to clients.
type PeriodOption struct {
	Value string `json:"value"` // "<zero-based month>_<year>", e.g. "6_2025"
	Text  string `json:"text"`  // display label, e.g. "Julho 2025"
}

// ChartPoint is one broker's deposit summary for chart rendering.
type ChartPoint struct {
	BrokerName   string  `json:"broker_name"`
	Team         string  `json:"team"`
	TotalDeposit float64 `json:"total_deposit"`
	DepositCount int     `json:"deposit_count"`
}
