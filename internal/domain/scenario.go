package domain

// TaskRole is the responder type a dispatch task is addressed to.
type TaskRole string

const (
	RoleRescuer TaskRole = "RESCUER"
	RoleMedic   TaskRole = "MEDIC"
	RoleSupply  TaskRole = "SUPPLY"
	RoleHeavy   TaskRole = "HEAVY"
)

// TaskPriority orders dispatch tasks for the rendering layer.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "HIGH"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityLow    TaskPriority = "LOW"
)

// DispatchTask is a suggested responder action at a coordinate.
type DispatchTask struct {
	ID          string       `json:"id"`
	Role        TaskRole     `json:"role"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Coordinates GeoPoint     `json:"coordinates"`
}

// ScenarioProfile is a pre-authored hazard template keyed by a signal label.
// RiskLevel is the level the author assigned; assessments always recompute
// the canonical level from RiskFactors. Confidence is the classifier
// certainty for the match, in [0, 1].
type ScenarioProfile struct {
	Key           string         `json:"key"`
	RiskLevel     RiskLevel      `json:"risk_level"`
	Confidence    float64        `json:"confidence"`
	RiskFactors   RiskFactors    `json:"risk_factors"`
	Location      GeoPoint       `json:"location"`
	Summary       string         `json:"summary"`
	DispatchTasks []DispatchTask `json:"dispatch_tasks"`
}

// Clone returns a deep copy so registry entries are never shared.
func (p ScenarioProfile) Clone() ScenarioProfile {
	out := p
	if p.DispatchTasks != nil {
		out.DispatchTasks = make([]DispatchTask, len(p.DispatchTasks))
		copy(out.DispatchTasks, p.DispatchTasks)
	}
	return out
}

// Signal is the classifier input: a scene label such as an uploaded file name,
// optionally with the image bytes for a model-backed classifier.
type Signal struct {
	Label       string
	Image       []byte
	ContentType string
}
