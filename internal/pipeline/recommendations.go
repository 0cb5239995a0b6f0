package pipeline

import "github.com/facastdev/facast/internal/model"

// Recommendations returns the saving advice shown alongside each
// indicator's report.
func Recommendations(ind model.Indicator) []string {
	switch ind {
	case model.Electricity:
		return []string{
			"Install LED lighting.",
			"Add motion sensors.",
			"Automate equipment schedules to cut idle consumption.",
		}
	case model.Water:
		return []string{
			"Fit low-flow devices on taps and toilets.",
			"Inspect and repair leaks in the distribution network.",
			"Run awareness campaigns on responsible water use.",
		}
	case model.Materials:
		return []string{
			"Reuse materials.",
			"Switch to refillable supplies.",
			"Digitize paperwork.",
			"Share and exchange materials between departments.",
		}
	case model.Services:
		return []string{
			"Review and renegotiate rates.",
			"Promote a cleanliness culture.",
			"Compare providers and look for better offers.",
		}
	default:
		return nil
	}
}
