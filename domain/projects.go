package domain

import (
	"github.com/fundwit/go-commons/types"
)

type ProjectStatus string

const (
	StatusInProgress = ProjectStatus("IN_PROGRESS")
	StatusCompleted  = ProjectStatus("COMPLETED")
	StatusCanceled   = ProjectStatus("CANCELED")
	StatusDeleted    = ProjectStatus("DELETED")

	// StatusOverdue is never persisted. It is derived from the stored status
	// and the end date at read time, see Project.OverdueAt.
	StatusOverdue = ProjectStatus("OVERDUE")
)

type ProjectPhase string

const (
	PhaseInitiation = ProjectPhase("INITIATION")
	PhasePlanning   = ProjectPhase("PLANNING")
	PhaseExecution  = ProjectPhase("EXECUTION")
	PhaseMonitoring = ProjectPhase("MONITORING")
	PhaseClosure    = ProjectPhase("CLOSURE")
)

// DateLayout is the layout of the date-only strings carried by
// Project.StartDate and Project.EndDate.
const DateLayout = "2006-01-02"

type Project struct {
	ID types.ID `json:"id"`

	Name        string   `json:"name"`
	Client      string   `json:"client"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Team        []string `json:"team"`

	Status ProjectStatus `json:"status"`
	Phase  ProjectPhase  `json:"phase"`

	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// Progress is derived from the task list and is recomputed on every
	// task mutation, never assigned by callers.
	Progress int `json:"progress"`

	InitialValue float64 `json:"initialValue"`
	FinalValue   float64 `json:"finalValue"`
	Currency     string  `json:"currency"`

	CreateTime types.Timestamp `json:"createTime"`

	Tasks    []Task         `json:"tasks"`
	Files    []FileMeta     `json:"files"`
	Comments []Comment      `json:"comments"`
	Risks    []Risk         `json:"risks"`
	History  []HistoryEntry `json:"history"`
}

// OverdueAt reports whether the project should be presented as overdue on
// the given date (DateLayout). Dates are ISO formatted, plain string
// comparison preserves chronological order.
func (p *Project) OverdueAt(today string) bool {
	if p.Status == StatusCompleted || p.Status == StatusCanceled || p.Status == StatusDeleted {
		return false
	}
	return p.EndDate != "" && p.EndDate < today
}

// EffectiveStatus is the status a view should display: the stored status,
// or StatusOverdue when the end date has passed.
func (p *Project) EffectiveStatus(today string) ProjectStatus {
	if p.OverdueAt(today) {
		return StatusOverdue
	}
	return p.Status
}

type Task struct {
	ID         types.ID        `json:"id"`
	Title      string          `json:"title"`
	Completed  bool            `json:"completed"`
	CreateTime types.Timestamp `json:"createTime"`
}

type FileMeta struct {
	ID          types.ID        `json:"id"`
	Name        string          `json:"name"`
	ContentType string          `json:"contentType"`
	Size        int64           `json:"size"`
	UploadTime  types.Timestamp `json:"uploadTime"`
	StorageKey  string          `json:"storageKey"`
}

type Comment struct {
	ID         types.ID        `json:"id"`
	Author     string          `json:"author"`
	Text       string          `json:"text"`
	CreateTime types.Timestamp `json:"createTime"`
}

type RiskLevel string

const (
	RiskLevelLow    = RiskLevel("low")
	RiskLevelMedium = RiskLevel("medium")
	RiskLevelHigh   = RiskLevel("high")
)

type RiskStatus string

const (
	RiskStatusActive    = RiskStatus("active")
	RiskStatusMitigated = RiskStatus("mitigated")
	RiskStatusClosed    = RiskStatus("closed")
)

type Risk struct {
	ID          types.ID        `json:"id"`
	Name        string          `json:"name"`
	Impact      RiskLevel       `json:"impact"`
	Probability RiskLevel       `json:"probability"`
	Contingency string          `json:"contingency"`
	Status      RiskStatus      `json:"status"`
	CreateTime  types.Timestamp `json:"createTime"`
}

type HistoryEntry struct {
	ID        types.ID        `json:"id"`
	Action    string          `json:"action"`
	Detail    string          `json:"detail"`
	Actor     string          `json:"actor"`
	Timestamp types.Timestamp `json:"timestamp"`
}
