package main_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI Document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should describe the auth endpoints", func() {
		for _, path := range []string{"/auth/register", "/auth/login", "/auth/refresh", "/auth/logout"} {
			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), "missing path %s", path)
			Expect(item.Post).NotTo(BeNil(), "missing POST on %s", path)
		}
	})

	It("should require bearer auth on protected endpoints", func() {
		item := doc.Paths.Find("/users/me")
		Expect(item).NotTo(BeNil())
		Expect(item.Get).NotTo(BeNil())
		Expect(item.Get.Security).NotTo(BeNil())
	})
})
