package importer

import "fmt"

// ValidateHistory checks the history for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateHistory(h *History) []error {
	var errs []error

	for i, s := range h.Studies {
		prefix := fmt.Sprintf("studies[%d]", i)
		if s.Date.IsZero() {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
		}
		if s.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s.duration must not be negative, got %g", prefix, s.Duration))
		} else if s.HasPlant() && s.Duration == 0 {
			errs = append(errs, fmt.Errorf("%s: a grown plant needs a positive duration", prefix))
		}
	}

	for i, b := range h.Breaks {
		prefix := fmt.Sprintf("breaks[%d]", i)
		if b.Date.IsZero() {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
		}
		if b.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s.duration must not be negative, got %g", prefix, b.Duration))
		}
	}

	return errs
}
