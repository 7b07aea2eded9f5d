package event

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestInvokeHandlers(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should collect results of concerned handlers only", func(t *testing.T) {
		defer func() { Handlers = nil }()

		seen := []string{}
		Handlers = []Handler{
			func(e *ChangeRecord) *HandleResult {
				seen = append(seen, "first")
				return &HandleResult{Success: true, HandlerIdentifier: "first"}
			},
			func(e *ChangeRecord) *HandleResult {
				seen = append(seen, "unconcerned")
				return nil
			},
			func(e *ChangeRecord) *HandleResult {
				seen = append(seen, "failing")
				return &HandleResult{Success: false, Message: "boom", HandlerIdentifier: "failing"}
			},
		}

		results := invokeHandlers(&ChangeRecord{ProjectID: 100, Category: CategoryCreated})
		Expect(seen).To(Equal([]string{"first", "unconcerned", "failing"}))
		Expect(results).To(Equal([]HandleResult{
			{Success: true, HandlerIdentifier: "first"},
			{Success: false, Message: "boom", HandlerIdentifier: "failing"},
		}))
	})

	t.Run("should answer empty results without handlers", func(t *testing.T) {
		Handlers = nil
		Expect(invokeHandlers(&ChangeRecord{})).To(Equal([]HandleResult{}))
	})
}
