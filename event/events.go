package event

import (
	"github.com/fundwit/go-commons/types"
)

type Category string

const (
	CategoryCreated          = Category("CREATED")
	CategoryPropertyUpdated  = Category("PROPERTY_UPDATED")
	CategoryExtensionUpdated = Category("EXTENSION_UPDATED")
	CategoryDeleted          = Category("DELETED")
)

// ChangeRecord describes one committed project mutation. It mirrors the
// history entry appended to the project and is fanned out to registered
// handlers after the mutation is persisted.
type ChangeRecord struct {
	ProjectID   types.ID `json:"projectId"`
	ProjectName string   `json:"projectName"`

	Category Category `json:"category"`
	Action   string   `json:"action"`
	Detail   string   `json:"detail"`

	Actor     string          `json:"actor"`
	Timestamp types.Timestamp `json:"timestamp"`
}
