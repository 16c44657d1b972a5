// Package ranking folds filtered events into per-broker and per-team
// aggregates and produces the three sorted leaderboard views.
//
// Every pass builds fresh aggregates from scratch; nothing here carries
// state between refresh cycles. Malformed input never fails — it simply
// contributes zero to whichever metric it would have affected.
package ranking

import (
	"sort"

	"github.com/aldeia/rankboard/internal/domain/model"
	"github.com/aldeia/rankboard/internal/domain/money"
	"github.com/aldeia/rankboard/internal/domain/roster"
)

// Default blended-score weights: 60% normalized deposits, 40% normalized
// activations.
const (
	defaultDepositWeight    = 0.6
	defaultActivationWeight = 0.4
)

// Engine computes aggregates and rankings over enriched events.
type Engine struct {
	resolver         *roster.Resolver
	depositWeight    float64
	activationWeight float64
}

// New creates an Engine bound to a roster resolver.
func New(resolver *roster.Resolver, opts ...Option) *Engine {
	e := &Engine{
		resolver:         resolver,
		depositWeight:    defaultDepositWeight,
		activationWeight: defaultActivationWeight,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AggregateBrokers folds events into per-broker aggregates keyed by
// canonical short name. Events without a broker name are skipped. Only
// strictly positive deposit amounts add to the total, and only the exact
// activation literal increments the activation count.
func (e *Engine) AggregateBrokers(events []model.Enriched) map[string]*model.BrokerAggregate {
	summary := make(map[string]*model.BrokerAggregate)

	for _, ev := range events {
		rawName := ev.Raw.StringField(model.FieldBroker)
		shortName := e.resolver.ShortName(rawName)
		if shortName == "" {
			continue
		}

		agg, ok := summary[shortName]
		if !ok {
			agg = &model.BrokerAggregate{
				BrokerName: shortName,
				FullName:   rawName,
				Team:       ev.Team,
			}
			summary[shortName] = agg
		}

		if deposit := money.Parse(ev.Raw.Lookup(model.FieldDeposit)); deposit > 0 {
			agg.TotalDeposit += deposit
		}
		if ev.Raw.StringField(model.FieldActivation) == model.Activated {
			agg.ActivationCount++
		}
	}

	return summary
}

// AggregateTeams folds events into per-team KPIs. Both fixed teams are
// always present, zero-valued when nothing matched; the unassigned bucket
// appears only when it received events.
func (e *Engine) AggregateTeams(events []model.Enriched) map[string]model.TeamKPI {
	kpis := make(map[string]model.TeamKPI)
	depositors := make(map[string]int) // events with a positive deposit, per team

	for _, team := range e.resolver.Teams() {
		kpis[team] = model.TeamKPI{MemberCount: e.resolver.RosterSize(team)}
	}

	for _, ev := range events {
		kpi, ok := kpis[ev.Team]
		if !ok {
			kpi = model.TeamKPI{MemberCount: e.resolver.RosterSize(ev.Team)}
		}

		if deposit := money.Parse(ev.Raw.Lookup(model.FieldDeposit)); deposit > 0 {
			kpi.TotalDeposit += deposit
			depositors[ev.Team]++
		}
		if ev.Raw.StringField(model.FieldActivation) == model.Activated {
			kpi.ActivationCount++
		}
		kpis[ev.Team] = kpi
	}

	for team, kpi := range kpis {
		if n := depositors[team]; n > 0 {
			kpi.ConversionRate = float64(kpi.ActivationCount) / float64(n) * 100
		}
		kpis[team] = kpi
	}

	return kpis
}

// Rankings computes the blended score for every aggregate and returns the
// three sorted views. Ties break on canonical name ascending so orderings
// are reproducible.
func (e *Engine) Rankings(aggregates map[string]*model.BrokerAggregate) model.Rankings {
	brokers := make([]*model.BrokerAggregate, 0, len(aggregates))
	for _, agg := range aggregates {
		brokers = append(brokers, agg)
	}

	// Floors of 1 keep the normalization defined when every total is zero.
	maxDeposit, maxActivations := 1.0, 1.0
	for _, b := range brokers {
		if b.TotalDeposit > maxDeposit {
			maxDeposit = b.TotalDeposit
		}
		if n := float64(b.ActivationCount); n > maxActivations {
			maxActivations = n
		}
	}
	for _, b := range brokers {
		b.GeneralScore = e.depositWeight*(b.TotalDeposit/maxDeposit) +
			e.activationWeight*(float64(b.ActivationCount)/maxActivations)
	}

	byValue := sortedBy(brokers, func(a, b *model.BrokerAggregate) bool {
		return a.TotalDeposit > b.TotalDeposit
	})
	byActivation := sortedBy(brokers, func(a, b *model.BrokerAggregate) bool {
		return a.ActivationCount > b.ActivationCount
	})
	byGeneral := sortedBy(brokers, func(a, b *model.BrokerAggregate) bool {
		return a.GeneralScore > b.GeneralScore
	})

	return model.Rankings{
		ByValue:      byValue,
		ByActivation: byActivation,
		ByGeneral:    byGeneral,
	}
}

// ChartData summarizes per-broker deposits for chart rendering, returning at
// most topN brokers ordered by total deposit descending.
func (e *Engine) ChartData(events []model.Enriched, topN int) []model.ChartPoint {
	summary := make(map[string]*model.ChartPoint)

	for _, ev := range events {
		rawName := ev.Raw.StringField(model.FieldBroker)
		shortName := e.resolver.ShortName(rawName)
		if shortName == "" {
			continue
		}

		point, ok := summary[shortName]
		if !ok {
			point = &model.ChartPoint{BrokerName: shortName, Team: ev.Team}
			summary[shortName] = point
		}
		if deposit := money.Parse(ev.Raw.Lookup(model.FieldDeposit)); deposit > 0 {
			point.TotalDeposit += deposit
			point.DepositCount++
		}
	}

	points := make([]model.ChartPoint, 0, len(summary))
	for _, p := range summary {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].TotalDeposit != points[j].TotalDeposit {
			return points[i].TotalDeposit > points[j].TotalDeposit
		}
		return points[i].BrokerName < points[j].BrokerName
	})

	if topN > 0 && len(points) > topN {
		points = points[:topN]
	}
	return points
}

// sortedBy copies brokers and sorts by the given strict ordering, breaking
// ties on canonical name ascending.
func sortedBy(brokers []*model.BrokerAggregate, less func(a, b *model.BrokerAggregate) bool) []*model.BrokerAggregate {
	out := make([]*model.BrokerAggregate, len(brokers))
	copy(out, brokers)
	sort.Slice(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].BrokerName < out[j].BrokerName
	})
	return out
}
