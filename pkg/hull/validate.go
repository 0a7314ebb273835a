package hull

import "fmt"

// Severity distinguishes blocking problems from advisory ones.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// ValidationError is a blocking parameter problem.
type ValidationError struct {
	Field    string
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning is an advisory parameter problem. The hull still
// builds (clamping guarantees that) but the result may surprise the user.
type ValidationWarning struct {
	Field   string
	Message string
}

// Validate runs parameter checks and returns blocking errors and advisory
// warnings separately. Clamped() recovers from every error listed here;
// validation exists so the UI can explain what clamping would change.
func Validate(p Params) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	dims := []struct {
		name  string
		value float64
	}{
		{"length", p.Length},
		{"beam", p.Beam},
		{"height", p.Height},
		{"wallThickness", p.WallThickness},
	}
	for _, d := range dims {
		if d.value <= 0 {
			errs = append(errs, ValidationError{
				Field:    d.name,
				Message:  fmt.Sprintf("is %.4f, must be positive", d.value),
				Severity: SeverityError,
			})
		}
	}

	if p.BilgeRadius < 0 {
		errs = append(errs, ValidationError{
			Field:    "bilgeRadius",
			Message:  fmt.Sprintf("is %.4f, must not be negative", p.BilgeRadius),
			Severity: SeverityError,
		})
	}

	if p.Beam > 0 && p.WallThickness >= p.Beam/2 {
		errs = append(errs, ValidationError{
			Field:    "wallThickness",
			Message:  fmt.Sprintf("is %.4f, must be below half the beam (%.4f)", p.WallThickness, p.Beam/2),
			Severity: SeverityError,
		})
	} else if p.Beam > 0 && p.WallThickness > 0.4*p.Beam/2 {
		warnings = append(warnings, ValidationWarning{
			Field:   "wallThickness",
			Message: "wall takes up over 40% of the half beam; the cavity will be very narrow",
		})
	}

	if p.Height > 0 && p.WallThickness >= p.Height {
		errs = append(errs, ValidationError{
			Field:    "wallThickness",
			Message:  fmt.Sprintf("is %.4f, must be below the hull height (%.4f)", p.WallThickness, p.Height),
			Severity: SeverityError,
		})
	}

	if p.Beam > 0 && p.BilgeRadius > p.Beam/2 {
		warnings = append(warnings, ValidationWarning{
			Field:   "bilgeRadius",
			Message: "larger than the half beam; it will be clamped to fit",
		})
	}

	if p.BowLengthFrac < 0.05 || p.BowLengthFrac > 0.95 {
		warnings = append(warnings, ValidationWarning{
			Field:   "bowLengthFrac",
			Message: "outside [0.05, 0.95]; it will be clamped so both stern and taper exist",
		})
	}

	return errs, warnings
}
