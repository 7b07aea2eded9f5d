package event

import (
	"github.com/sirupsen/logrus"
)

// Handler returns nil when the record is not of its concern.
type Handler func(e *ChangeRecord) *HandleResult

type HandleResult struct {
	Success           bool
	Message           string
	HandlerIdentifier string
}

var Handlers []Handler

var InvokeHandlersFunc = invokeHandlers

func invokeHandlers(record *ChangeRecord) []HandleResult {
	results := []HandleResult{}
	for _, handler := range Handlers {
		logrus.Debug("pre handle change record ", record)
		r := handler(record)

		if r == nil {
			continue
		}

		results = append(results, *r)

		if r.Success {
			logrus.Info("post handle change record. ", r)
		} else {
			logrus.Error("post handler error. ", r)
		}
	}
	return results
}
