package project

import (
	"beacon/common"
	"beacon/domain"
	"beacon/event"
	"context"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

var (
	commentIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	AddCommentFunc = AddComment
)

// AddComment appends a comment to the named project. Comments are append
// only, there is no edit or remove operation. Unknown project id is a silent
// no-op returning nil.
func AddComment(projectId types.ID, text, author string, ctx context.Context) *domain.Comment {
	mutex.Lock()

	p := findProject(projectId)
	if p == nil {
		mutex.Unlock()
		return nil
	}

	now := types.CurrentTimestamp()
	comment := domain.Comment{
		ID:         common.NextId(commentIdWorker),
		Author:     author,
		Text:       text,
		CreateTime: now,
	}
	p.Comments = append(p.Comments, comment)

	ev := appendHistory(p, event.CategoryExtensionUpdated, "comment.added", "comment added by "+author, author, now)

	persist(ctx)
	mutex.Unlock()

	notifyHandlers(ev)
	return &comment
}
