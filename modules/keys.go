package modules

// Storage keys, one per feature module. Each key owns exactly one document
// in the shared persistence namespace.
const (
	KeyBusinessPlan = "businessPlan"
	KeyOrgChart     = "orgChart"
	KeySWOT         = "swot"
	KeyFiveForces   = "fiveForces"
	KeyForecast     = "forecast"
	KeyPitchDeck    = "pitchDeck"
	KeyChecklist    = "checklist"
	KeyRoadmap      = "roadmap"
	KeyCanvas       = "canvas"
)
