package export

import (
	"beacon/currency"
	"beacon/domain"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var ProjectsCSVFunc = ProjectsCSV

// ProjectsCSV writes the selected projects as a CSV document with financial
// columns converted into the display currency. Pure function of its inputs
// plus the currency service, it never touches the store.
func ProjectsCSV(w io.Writer, projects []domain.Project, display string, service *currency.Service) error {
	writer := csv.NewWriter(w)

	header := []string{
		"id", "name", "client", "status", "phase", "startDate", "endDate",
		"progress", "tasks", "completedTasks", "risks", "comments",
		"currency", "initialValue", "finalValue",
		"initialValue(" + display + ")", "finalValue(" + display + ")",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("export projects: %v", err)
	}

	for i := range projects {
		p := &projects[i]

		completed := 0
		for _, t := range p.Tasks {
			if t.Completed {
				completed++
			}
		}

		initial, err := service.Convert(p.InitialValue, p.Currency, display)
		if err != nil {
			return fmt.Errorf("export project %d: %v", p.ID, err)
		}
		final, err := service.Convert(p.FinalValue, p.Currency, display)
		if err != nil {
			return fmt.Errorf("export project %d: %v", p.ID, err)
		}

		record := []string{
			p.ID.String(), p.Name, p.Client, string(p.Status), string(p.Phase),
			p.StartDate, p.EndDate,
			strconv.Itoa(p.Progress), strconv.Itoa(len(p.Tasks)), strconv.Itoa(completed),
			strconv.Itoa(len(p.Risks)), strconv.Itoa(len(p.Comments)),
			p.Currency,
			strconv.FormatFloat(p.InitialValue, 'f', 2, 64),
			strconv.FormatFloat(p.FinalValue, 'f', 2, 64),
			service.Format(initial, display),
			service.Format(final, display),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("export project %d: %v", p.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("export projects: %v", err)
	}
	return nil
}
