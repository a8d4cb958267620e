package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tdee/internal/domain"
)

// Validate checks a state document before conversion and returns every
// problem found.
func Validate(doc *StateDocument) []error {
	var errs []error

	errs = append(errs, validatePositive("startWeight", doc.StartWeight)...)
	errs = append(errs, validatePositive("goalWeight", doc.GoalWeight)...)
	errs = append(errs, validatePositive("height", doc.Height)...)
	if doc.CalculatedTDEE != nil && *doc.CalculatedTDEE < 0 {
		errs = append(errs, fmt.Errorf("calculatedTDEE must not be negative"))
	}

	seen := make(map[string]int, len(doc.Logs))
	for i, l := range doc.Logs {
		prefix := fmt.Sprintf("logs[%d]", i)

		if l.Date == "" {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
		} else if _, err := time.Parse(domain.DateLayout, l.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, l.Date))
		} else if first, dup := seen[l.Date]; dup {
			errs = append(errs, fmt.Errorf("%s.date: duplicate date %q (first seen at logs[%d])", prefix, l.Date, first))
		} else {
			seen[l.Date] = i
		}

		if l.Weight != nil && *l.Weight < 0 {
			errs = append(errs, fmt.Errorf("%s.weight must not be negative", prefix))
		}
		if l.Calories != nil && *l.Calories < 0 {
			errs = append(errs, fmt.Errorf("%s.calories must not be negative", prefix))
		}
	}

	return errs
}

func validatePositive(field string, v *float64) []error {
	if v != nil && *v < 0 {
		return []error{fmt.Errorf("%s must not be negative", field)}
	}
	return nil
}
