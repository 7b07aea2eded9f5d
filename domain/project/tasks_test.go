package project_test

import (
	"beacon/domain"
	"beacon/domain/project"
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestAddTask(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should append task and recompute progress", func(t *testing.T) {
		_, records := storeTestSetup()

		p := buildProject("demo")

		task := project.AddTask(p.ID, "write docs", "alice", context.Background())
		Expect(task).ToNot(BeNil())
		Expect(task.ID).ToNot(BeZero())
		Expect(task.Title).To(Equal("write docs"))
		Expect(task.Completed).To(BeFalse())
		Expect(time.Since(task.CreateTime.Time()) < time.Second).To(BeTrue())

		detail, _ := project.DetailProject(p.ID)
		Expect(len(detail.Tasks)).To(Equal(1))
		Expect(detail.Progress).To(BeZero())
		Expect(detail.History[len(detail.History)-1].Detail).To(Equal("task added: write docs"))

		last := (*records)[len(*records)-1]
		Expect(last.Action).To(Equal("task.added"))
	})

	t.Run("should no-op on unknown project", func(t *testing.T) {
		storeTestSetup()

		buildProject("demo")
		Expect(project.AddTask(404, "ghost", "alice", context.Background())).To(BeNil())

		detail := project.QueryProjects(domain.ProjectQuery{})[0]
		Expect(len(detail.Tasks)).To(BeZero())
		Expect(len(detail.History)).To(Equal(1))
	})

	t.Run("re-adding the same title creates a duplicate, accepted behavior", func(t *testing.T) {
		storeTestSetup()

		p := buildProject("demo")
		project.AddTask(p.ID, "twice", "alice", context.Background())
		project.AddTask(p.ID, "twice", "alice", context.Background())

		detail, _ := project.DetailProject(p.ID)
		Expect(len(detail.Tasks)).To(Equal(2))
		Expect(detail.Tasks[0].ID).ToNot(Equal(detail.Tasks[1].ID))
	})
}

func TestToggleTask(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should flip exactly one task and recompute progress", func(t *testing.T) {
		storeTestSetup()

		p := buildProject("demo")
		a := project.AddTask(p.ID, "task a", "alice", context.Background())
		project.AddTask(p.ID, "task b", "alice", context.Background())

		toggled := project.ToggleTask(p.ID, a.ID, "alice", context.Background())
		Expect(toggled.Completed).To(BeTrue())

		detail, _ := project.DetailProject(p.ID)
		Expect(detail.Progress).To(Equal(50))
		Expect(detail.History[len(detail.History)-1].Detail).To(Equal("task completed: task a"))
	})

	t.Run("double toggle restores flag and progress, history still grows by two", func(t *testing.T) {
		storeTestSetup()

		p := buildProject("demo")
		a := project.AddTask(p.ID, "task a", "alice", context.Background())

		before, _ := project.DetailProject(p.ID)

		project.ToggleTask(p.ID, a.ID, "alice", context.Background())
		toggledBack := project.ToggleTask(p.ID, a.ID, "alice", context.Background())
		Expect(toggledBack.Completed).To(BeFalse())

		after, _ := project.DetailProject(p.ID)
		Expect(after.Progress).To(Equal(before.Progress))
		Expect(after.Tasks[0].Completed).To(Equal(before.Tasks[0].Completed))
		Expect(len(after.History)).To(Equal(len(before.History) + 2))
		Expect(after.History[len(after.History)-1].Detail).To(Equal("task reopened: task a"))
	})

	t.Run("should no-op on unknown project or task", func(t *testing.T) {
		storeTestSetup()

		p := buildProject("demo")
		project.AddTask(p.ID, "task a", "alice", context.Background())

		Expect(project.ToggleTask(404, 1, "alice", context.Background())).To(BeNil())
		Expect(project.ToggleTask(p.ID, 404, "alice", context.Background())).To(BeNil())

		detail, _ := project.DetailProject(p.ID)
		Expect(detail.Tasks[0].Completed).To(BeFalse())
		Expect(len(detail.History)).To(Equal(2))
	})
}

// the walkthrough of a project moving through its task lifecycle
func TestTaskLifecycleScenario(t *testing.T) {
	RegisterTestingT(t)

	t.Run("progress follows the task list through a full sequence", func(t *testing.T) {
		storeTestSetup()

		p := buildProject("scenario")
		detail, _ := project.DetailProject(p.ID)
		Expect(detail.Progress).To(BeZero())

		a := project.AddTask(p.ID, "A", "alice", context.Background())
		b := project.AddTask(p.ID, "B", "alice", context.Background())
		detail, _ = project.DetailProject(p.ID)
		Expect(detail.Progress).To(BeZero())
		Expect(len(detail.Tasks)).To(Equal(2))

		project.ToggleTask(p.ID, a.ID, "alice", context.Background())
		detail, _ = project.DetailProject(p.ID)
		Expect(detail.Progress).To(Equal(50))

		project.ToggleTask(p.ID, b.ID, "alice", context.Background())
		detail, _ = project.DetailProject(p.ID)
		Expect(detail.Progress).To(Equal(100))
		// 1 create + 4 task mutations so far
		Expect(len(detail.History)).To(Equal(5))

		project.ToggleTask(p.ID, a.ID, "alice", context.Background())
		detail, _ = project.DetailProject(p.ID)
		Expect(detail.Progress).To(Equal(50))
		Expect(len(detail.History)).To(Equal(6))
	})
}
