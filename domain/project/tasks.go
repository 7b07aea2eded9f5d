package project

import (
	"beacon/common"
	"beacon/domain"
	"beacon/event"
	"context"
	"math"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

var (
	taskIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	AddTaskFunc    = AddTask
	ToggleTaskFunc = ToggleTask
)

// AddTask appends a task to the named project and recomputes its progress.
// Unknown project id is a silent no-op returning nil.
func AddTask(projectId types.ID, title string, actor string, ctx context.Context) *domain.Task {
	mutex.Lock()

	p := findProject(projectId)
	if p == nil {
		mutex.Unlock()
		return nil
	}

	now := types.CurrentTimestamp()
	task := domain.Task{
		ID:         common.NextId(taskIdWorker),
		Title:      title,
		Completed:  false,
		CreateTime: now,
	}
	p.Tasks = append(p.Tasks, task)
	p.Progress = Progress(p.Tasks)

	ev := appendHistory(p, event.CategoryExtensionUpdated, "task.added", "task added: "+title, actor, now)

	persist(ctx)
	mutex.Unlock()

	notifyHandlers(ev)
	return &task
}

// ToggleTask flips the completed flag of exactly one task and recomputes the
// project progress. Unknown project or task id is a silent no-op returning
// nil.
func ToggleTask(projectId, taskId types.ID, actor string, ctx context.Context) *domain.Task {
	mutex.Lock()

	p := findProject(projectId)
	if p == nil {
		mutex.Unlock()
		return nil
	}

	var task *domain.Task
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskId {
			task = &p.Tasks[i]
			break
		}
	}
	if task == nil {
		mutex.Unlock()
		return nil
	}

	task.Completed = !task.Completed
	p.Progress = Progress(p.Tasks)

	detail := "task reopened: " + task.Title
	if task.Completed {
		detail = "task completed: " + task.Title
	}
	ev := appendHistory(p, event.CategoryExtensionUpdated, "task.toggled", detail, actor, types.CurrentTimestamp())

	persist(ctx)
	r := *task
	mutex.Unlock()

	notifyHandlers(ev)
	return &r
}

// Progress is the percentage of completed tasks, rounded to nearest with .5
// away from zero, 0 when the task list is empty.
func Progress(tasks []domain.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}
