package domain

// ProjectCreation carries the creation-time fields. Required fields are
// enforced at the binding layer, the store itself trusts its caller and only
// supplies defaults for the optional ones.
type ProjectCreation struct {
	Name        string   `json:"name" binding:"required"`
	Client      string   `json:"client" binding:"required"`
	Description string   `json:"description" binding:"required"`
	StartDate   string   `json:"startDate" binding:"required"`
	EndDate     string   `json:"endDate" binding:"required"`
	Tags        []string `json:"tags"`
	Team        []string `json:"team"`

	Status ProjectStatus `json:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETED CANCELED DELETED"`
	Phase  ProjectPhase  `json:"phase" binding:"omitempty,oneof=INITIATION PLANNING EXECUTION MONITORING CLOSURE"`

	InitialValue float64 `json:"initialValue" binding:"omitempty,min=0"`
	FinalValue   float64 `json:"finalValue" binding:"omitempty,min=0"`
	Currency     string  `json:"currency"`
}

// ProjectPatch is a typed partial update: a nil field means leave unchanged.
// Owned collections are not patchable here, they change only through their
// own operations.
type ProjectPatch struct {
	Name        *string   `json:"name"`
	Client      *string   `json:"client"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Team        *[]string `json:"team"`

	Status *ProjectStatus `json:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETED CANCELED DELETED"`
	Phase  *ProjectPhase  `json:"phase" binding:"omitempty,oneof=INITIATION PLANNING EXECUTION MONITORING CLOSURE"`

	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`

	InitialValue *float64 `json:"initialValue" binding:"omitempty,min=0"`
	FinalValue   *float64 `json:"finalValue" binding:"omitempty,min=0"`
	Currency     *string  `json:"currency"`
}

type TaskCreation struct {
	Title string `json:"title" binding:"required"`
}

type CommentCreation struct {
	Text   string `json:"text" binding:"required"`
	Author string `json:"author" binding:"required"`
}

type RiskCreation struct {
	Name        string    `json:"name" binding:"required"`
	Impact      RiskLevel `json:"impact" binding:"required,oneof=low medium high"`
	Probability RiskLevel `json:"probability" binding:"required,oneof=low medium high"`
	Contingency string    `json:"contingency"`
}

type RiskPatch struct {
	Name        *string     `json:"name"`
	Impact      *RiskLevel  `json:"impact" binding:"omitempty,oneof=low medium high"`
	Probability *RiskLevel  `json:"probability" binding:"omitempty,oneof=low medium high"`
	Contingency *string     `json:"contingency"`
	Status      *RiskStatus `json:"status" binding:"omitempty,oneof=active mitigated closed"`
}

// ProjectQuery is the filter set of the list and search operations.
type ProjectQuery struct {
	Name    string        `json:"name" form:"name"`
	Status  ProjectStatus `json:"status" form:"status"`
	Phase   ProjectPhase  `json:"phase" form:"phase"`
	Tag     string        `json:"tag" form:"tag"`
	Deleted bool          `json:"deleted" form:"deleted"`
	Overdue bool          `json:"overdue" form:"overdue"`
}
