//go:build e2e
// +build e2e

package e2e_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Apurer/petstore-e2e/internal/app/e2e"
	"github.com/Apurer/petstore-e2e/internal/clients/http/petstore"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/application"
)

var (
	client *petstore.Client
	ctx    context.Context
	config e2e.Config
	pets   application.Config
)

var _ = BeforeSuite(func() {
	var err error
	config, err = e2e.LoadConfig()
	Expect(err).NotTo(HaveOccurred())
	pets, err = config.PetsConfig()
	Expect(err).NotTo(HaveOccurred())
	client, err = petstore.NewClient(config.BaseURL, petstore.WithTimeout(config.RequestTimeout))
	Expect(err).NotTo(HaveOccurred())
	ctx = context.Background()
	GinkgoWriter.Printf("pet store: %s\n", client.BaseURL())
})

func TestLivePetStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Live Pet Store Suite")
}
