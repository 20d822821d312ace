//go:build e2e
// +build e2e

package e2e_test

import (
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/fixtures"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/validation"
)

// Batch create runs after the lifecycle. A failed spec does not skip the rest.
var _ = Describe("Pet store", Ordered, ContinueOnFailure, func() {
	Describe("Pet lifecycle", func() {
		It("creates the pet", func() {
			resp, err := client.CreatePet(ctx, pets.Create)
			Expect(err).NotTo(HaveOccurred())
			Expect(validation.ValidatePet(resp, validation.ExpectFrom(pets.Create, pets.CreatedStatus))).To(Succeed())
		})

		It("reads the created pet", func() {
			resp, err := client.GetPet(ctx, pets.PetID())
			Expect(err).NotTo(HaveOccurred())
			Expect(validation.ValidatePet(resp, validation.ExpectFrom(pets.Create, pets.CreatedStatus))).To(Succeed())
		})

		It("marks the pet sold", func() {
			resp, err := client.UpdatePet(ctx, pets.Update)
			Expect(err).NotTo(HaveOccurred())
			Expect(validation.ValidatePet(resp, validation.ExpectFrom(pets.Update, pets.UpdatedStatus))).To(Succeed())
		})

		It("deletes the pet", func() {
			resp, err := client.DeletePet(ctx, pets.PetID())
			Expect(err).NotTo(HaveOccurred())
			Expect(validation.ValidateDelete(resp, pets.PetID())).To(Succeed())
		})

		It("no longer finds the pet", func() {
			resp, err := client.GetPet(ctx, pets.PetID())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Batch create", func() {
		It("creates every pet of the batch fixture", func() {
			count := 0
			for row, err := range fixtures.Rows(pets.Fixtures, pets.BatchFixture) {
				Expect(err).NotTo(HaveOccurred())
				By(fmt.Sprintf("creating %s from line %d", row.Name, row.Line))
				pet, err := fixtures.BuildPet(row)
				Expect(err).NotTo(HaveOccurred())
				resp, err := client.CreatePet(ctx, pet)
				Expect(err).NotTo(HaveOccurred())
				Expect(validation.ValidateBatch(resp, validation.ExpectFrom(pet, pet.Status))).To(Succeed())
				count++
			}
			Expect(count).To(BeNumerically(">", 0))
		})
	})
})
