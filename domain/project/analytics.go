package project

import (
	"beacon/domain"
	"sort"
)

var AnalyzeFunc = Analyze

// Converter is the currency conversion dependency of the financial
// aggregates, satisfied by currency.Service.
type Converter interface {
	Convert(amount float64, from, to string) (float64, error)
}

type Summary struct {
	TotalProjects int `json:"totalProjects"`

	// StatusCounts is keyed by the effective status, so OVERDUE appears
	// here even though it is never persisted.
	StatusCounts map[domain.ProjectStatus]int `json:"statusCounts"`
	PhaseCounts  map[domain.ProjectPhase]int  `json:"phaseCounts"`

	TaskTotal       int `json:"taskTotal"`
	TaskCompleted   int `json:"taskCompleted"`
	AverageProgress int `json:"averageProgress"`

	RiskCounts map[domain.RiskStatus]int `json:"riskCounts"`

	DisplayCurrency string          `json:"displayCurrency"`
	InitialTotal    float64         `json:"initialTotal"`
	FinalTotal      float64         `json:"finalTotal"`
	ByCurrency      []CurrencyTotal `json:"byCurrency"`

	Monthly []MonthlyCount `json:"monthly"`
}

type CurrencyTotal struct {
	Currency     string  `json:"currency"`
	InitialTotal float64 `json:"initialTotal"`
	FinalTotal   float64 `json:"finalTotal"`
}

type MonthlyCount struct {
	Month     string `json:"month"` // 2006-01
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// Analyze computes the dashboard aggregates from the live collection.
// Soft-deleted projects are left out. Financial totals are converted into the
// display currency through the injected converter.
func Analyze(display string, conv Converter) (*Summary, error) {
	projects := QueryProjectsFunc(domain.ProjectQuery{})

	today := TodayFunc()
	s := Summary{
		TotalProjects:   len(projects),
		StatusCounts:    map[domain.ProjectStatus]int{},
		PhaseCounts:     map[domain.ProjectPhase]int{},
		RiskCounts:      map[domain.RiskStatus]int{},
		DisplayCurrency: display,
		ByCurrency:      []CurrencyTotal{},
		Monthly:         []MonthlyCount{},
	}

	byCurrency := map[string]*CurrencyTotal{}
	monthly := map[string]*MonthlyCount{}
	progressSum := 0

	for i := range projects {
		p := &projects[i]

		s.StatusCounts[p.EffectiveStatus(today)]++
		s.PhaseCounts[p.Phase]++
		progressSum += p.Progress

		for _, t := range p.Tasks {
			s.TaskTotal++
			if t.Completed {
				s.TaskCompleted++
			}
		}
		for _, r := range p.Risks {
			s.RiskCounts[r.Status]++
		}

		ct := byCurrency[p.Currency]
		if ct == nil {
			ct = &CurrencyTotal{Currency: p.Currency}
			byCurrency[p.Currency] = ct
		}
		ct.InitialTotal += p.InitialValue
		ct.FinalTotal += p.FinalValue

		if initial, err := conv.Convert(p.InitialValue, p.Currency, display); err == nil {
			s.InitialTotal += initial
		} else {
			return nil, err
		}
		if final, err := conv.Convert(p.FinalValue, p.Currency, display); err == nil {
			s.FinalTotal += final
		} else {
			return nil, err
		}

		createdMonth := monthOf(p.CreateTime.Time().Format(domain.DateLayout))
		if createdMonth != "" {
			m := ensureMonth(monthly, createdMonth)
			m.Created++
		}
		if p.Status == domain.StatusCompleted {
			if completedMonth := monthOf(p.EndDate); completedMonth != "" {
				m := ensureMonth(monthly, completedMonth)
				m.Completed++
			}
		}
	}

	if len(projects) > 0 {
		s.AverageProgress = progressSum / len(projects)
	}

	for _, ct := range byCurrency {
		s.ByCurrency = append(s.ByCurrency, *ct)
	}
	sort.Slice(s.ByCurrency, func(i, j int) bool { return s.ByCurrency[i].Currency < s.ByCurrency[j].Currency })

	for _, m := range monthly {
		s.Monthly = append(s.Monthly, *m)
	}
	sort.Slice(s.Monthly, func(i, j int) bool { return s.Monthly[i].Month < s.Monthly[j].Month })

	return &s, nil
}

func monthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[0:7]
}

func ensureMonth(monthly map[string]*MonthlyCount, month string) *MonthlyCount {
	m := monthly[month]
	if m == nil {
		m = &MonthlyCount{Month: month}
		monthly[month] = m
	}
	return m
}
