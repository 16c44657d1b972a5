// Package roster resolves raw broker names to canonical short names and teams.
package roster

import "sort"

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithTeams replaces the default team rosters. Team iteration order is
// made deterministic by sorting team names.
func WithTeams(teams map[string][]string) Option {
	return func(r *Resolver) {
		if len(teams) > 0 {
			r.setTeams(teams)
		}
	}
}

// WithBrokerMap replaces the default raw-name to short-name mapping.
func WithBrokerMap(brokerMap map[string]string) Option {
	return func(r *Resolver) {
		if len(brokerMap) > 0 {
			m := make(map[string]string, len(brokerMap))
			for raw, short := range brokerMap {
				m[raw] = short
			}
			r.brokerMap = m
		}
	}
}

func (r *Resolver) setTeams(teams map[string][]string) {
	r.teams = make(map[string][]string, len(teams))
	r.teamOrder = make([]string, 0, len(teams))
	for name, members := range teams {
		roster := make([]string, len(members))
		copy(roster, members)
		r.teams[name] = roster
		r.teamOrder = append(r.teamOrder, name)
	}
	sort.Strings(r.teamOrder)
}
