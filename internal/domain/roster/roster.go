// Package roster resolves raw broker names to canonical short names and to
// one of the two fixed teams. Both lookups are pure functions over static
// configuration and never fail.
package roster

// TeamUnassigned is the bucket for brokers not present on any roster.
// Kept auditably visible so team totals reconcile against raw event counts.
const TeamUnassigned = "Sem Time"

// Default production rosters and name mapping. Overridable via options.
var (
	defaultTeams = map[string][]string{
		"DOLLAR GODS": {"Felipe Pauluk", "Natan", "Allison", "João", "Raul", "Otavio", "Lucas Vinicius"},
		"ELITE SQUAD": {"Luan", "Victor", "Gabriel Dias", "Gabriel Wagner", "Ruan", "Arthur", "Laurence", "Davi"},
	}

	defaultBrokerMap = map[string]string{
		"Felipe Pauluk":          "Felipe",
		"João Lucas":             "João",
		"Gabriel Dias":           "G. Dias",
		"Gabriel Wagner":         "G. Wagner",
		"Luan Felipe":            "Luan",
		"Victor Renan":           "Victor",
		"Ruan Neuberger":         "Ruan",
		"Arthur De Oliveira":     "Arthur",
		"Laurence Dias":          "Laurence",
		"Davi Dias do Nascimento": "Davi",
		"Allison Moreira":        "Allison",
		"Otavio":                 "Otavio",
		"Raul":                   "Raul",
		"Natan":                  "Natan",
		"Lucas Vinicius":         "Lucas",
	}
)

// Resolver answers short-name and team-membership lookups.
type Resolver struct {
	teams     map[string][]string
	teamOrder []string
	brokerMap map[string]string
}

// New creates a Resolver with the production rosters unless overridden.
func New(opts ...Option) *Resolver {
	r := &Resolver{}

	for _, opt := range opts {
		opt(r)
	}

	if r.teams == nil {
		r.setTeams(defaultTeams)
	}
	if r.brokerMap == nil {
		r.brokerMap = defaultBrokerMap
	}

	return r
}

// ShortName maps a raw broker name to its canonical short name.
// Unknown names are treated as already canonical and returned unchanged.
func (r *Resolver) ShortName(rawName string) string {
	if short, ok := r.brokerMap[rawName]; ok {
		return short
	}
	return rawName
}

// Team returns the team whose roster contains the broker, matching either
// the raw name or its canonical short name, or TeamUnassigned.
func (r *Resolver) Team(rawName string) string {
	shortName := r.ShortName(rawName)
	for _, team := range r.teamOrder {
		for _, member := range r.teams[team] {
			if member == rawName || member == shortName {
				return team
			}
		}
	}
	return TeamUnassigned
}

// Teams returns the fixed team names in stable order.
func (r *Resolver) Teams() []string {
	out := make([]string, len(r.teamOrder))
	copy(out, r.teamOrder)
	return out
}

// RosterSize returns the static member count for a team, 0 for unknown teams
// and for the unassigned bucket.
func (r *Resolver) RosterSize(team string) int {
	return len(r.teams[team])
}
