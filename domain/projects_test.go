package domain_test

import (
	"beacon/domain"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Project", func() {
	var (
		project *domain.Project
		today   string
	)

	BeforeEach(func() {
		project = &domain.Project{
			Name:    "website relaunch",
			Status:  domain.StatusInProgress,
			EndDate: "2021-06-30",
		}
		today = "2021-06-15"
	})

	Describe("OverdueAt", func() {
		Context("With an in-progress project", func() {
			It("should not be overdue before the end date", func() {
				Ω(project.OverdueAt(today)).Should(BeFalse())
			})

			It("should not be overdue on the end date itself", func() {
				Ω(project.OverdueAt("2021-06-30")).Should(BeFalse())
			})

			It("should be overdue once the end date has passed", func() {
				Ω(project.OverdueAt("2021-07-01")).Should(BeTrue())
			})

			It("should never be overdue without an end date", func() {
				project.EndDate = ""
				Ω(project.OverdueAt("2099-12-31")).Should(BeFalse())
			})
		})

		Context("With a settled project", func() {
			It("should not be overdue when completed", func() {
				project.Status = domain.StatusCompleted
				Ω(project.OverdueAt("2021-07-01")).Should(BeFalse())
			})

			It("should not be overdue when canceled", func() {
				project.Status = domain.StatusCanceled
				Ω(project.OverdueAt("2021-07-01")).Should(BeFalse())
			})

			It("should not be overdue when soft deleted", func() {
				project.Status = domain.StatusDeleted
				Ω(project.OverdueAt("2021-07-01")).Should(BeFalse())
			})
		})
	})

	Describe("EffectiveStatus", func() {
		It("should return the stored status before the end date", func() {
			Ω(project.EffectiveStatus(today)).Should(Equal(domain.StatusInProgress))
		})

		It("should return OVERDUE once the end date has passed", func() {
			Ω(project.EffectiveStatus("2021-07-01")).Should(Equal(domain.StatusOverdue))
		})

		It("should leave the stored status untouched", func() {
			project.EffectiveStatus("2021-07-01")
			Ω(project.Status).Should(Equal(domain.StatusInProgress))
		})

		It("should keep a settled status even past the end date", func() {
			project.Status = domain.StatusCompleted
			Ω(project.EffectiveStatus("2021-07-01")).Should(Equal(domain.StatusCompleted))
		})
	})
})
