//go:build integration
// +build integration

package integration

import (
	"Staffline/internal/commands"
	"Staffline/internal/mediator"
	"Staffline/internal/repositories"
	"Staffline/utils"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Employee flow", Ordered, func() {
	var h *harness

	email := "a@x.com"

	BeforeAll(func() {
		h = newIntegrationTestHarness()
	})

	AfterAll(func() {
		h.Close()
	})

	It("should register an employee", func() {
		response, err := mediator.Send[*commands.RegisterEmployeeResponse](h.Ctx(), h.Mediator(), commands.RegisterEmployee{
			Email:    email,
			Password: "secret1",
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Employee.IsVerified()).To(BeFalse())
		Expect(response.Employee.VerificationCode()).To(MatchRegexp(`^[1-9][0-9]{5}$`))
		Expect(h.mails.LastCode(email)).To(Equal(response.Employee.VerificationCode()))
	})

	It("should reject a second registration", func() {
		_, err := mediator.Send[*commands.RegisterEmployeeResponse](h.Ctx(), h.Mediator(), commands.RegisterEmployee{
			Email:    email,
			Password: "secret2",
		})
		Expect(err).To(MatchError(commands.ErrEmployeeAlreadyExists))
	})

	It("should reject a short password", func() {
		_, err := mediator.Send[*commands.RegisterEmployeeResponse](h.Ctx(), h.Mediator(), commands.RegisterEmployee{
			Email:    "short@x.com",
			Password: "12345",
		})
		Expect(err).To(MatchError(utils.ErrHttpBadRequest))

		employee, err := h.Employees().First(h.Ctx(), repositories.NewEmployeeFilter().Email("short@x.com"))
		Expect(err).ToNot(HaveOccurred())
		Expect(employee).To(BeNil())
	})

	It("should reject a wrong code", func() {
		_, err := mediator.Send[*commands.VerifyEmployeeCodeResponse](h.Ctx(), h.Mediator(), commands.VerifyEmployeeCode{
			Email:            email,
			VerificationCode: "000000",
		})
		Expect(err).To(MatchError(commands.ErrInvalidVerificationCode))

		employee, err := h.Employees().Single(h.Ctx(), repositories.NewEmployeeFilter().Email(email))
		Expect(err).ToNot(HaveOccurred())
		Expect(employee.IsVerified()).To(BeFalse())
	})

	It("should verify with the mailed code", func() {
		response, err := mediator.Send[*commands.VerifyEmployeeCodeResponse](h.Ctx(), h.Mediator(), commands.VerifyEmployeeCode{
			Email:            email,
			VerificationCode: h.mails.LastCode(email),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Employee.IsVerified()).To(BeTrue())
	})

	It("should accept the code again", func() {
		response, err := mediator.Send[*commands.VerifyEmployeeCodeResponse](h.Ctx(), h.Mediator(), commands.VerifyEmployeeCode{
			Email:            email,
			VerificationCode: h.mails.LastCode(email),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Employee.IsVerified()).To(BeTrue())
	})

	It("should report unknown employees", func() {
		_, err := mediator.Send[*commands.VerifyEmployeeCodeResponse](h.Ctx(), h.Mediator(), commands.VerifyEmployeeCode{
			Email:            "nobody@x.com",
			VerificationCode: "123456",
		})
		Expect(err).To(MatchError(commands.ErrEmployeeNotFound))
	})

	It("should store one employee for concurrent registrations", func() {
		concurrentEmail := "race@x.com"

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = mediator.Send[*commands.RegisterEmployeeResponse](h.Ctx(), h.Mediator(), commands.RegisterEmployee{
					Email:    concurrentEmail,
					Password: fmt.Sprintf("secret%d", i),
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			Expect(err).To(MatchError(commands.ErrEmployeeAlreadyExists))
		}
		Expect(succeeded).To(Equal(1))
	})
})
