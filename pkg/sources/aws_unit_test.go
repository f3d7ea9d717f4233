//go:build unit

package sources_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/animalet/entorn-go/pkg/sources"
)

var _ = Describe("AWS source", func() {
	Context("AWSConfig Validate", func() {
		It("should return error if region is empty", func() {
			cfg := sources.AWSConfig{
				AccessKeyID:     "key",
				SecretAccessKey: "secret",
			}
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("AWS region is required"))
		})

		It("should return error if secret name is empty", func() {
			cfg := sources.AWSConfig{
				Region: "us-east-1",
			}
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("AWS secret name is required"))
		})

		It("should pass with valid config", func() {
			cfg := sources.AWSConfig{
				Region:          "us-east-1",
				AccessKeyID:     "key",
				SecretAccessKey: "secret",
				SecretName:      "my-secret",
			}
			err := cfg.Validate()
			Expect(err).NotTo(HaveOccurred())
		})

		It("should pass without explicit credentials", func() {
			cfg := sources.AWSConfig{
				Region:     "eu-west-1",
				SecretName: "my-secret",
			}
			err := cfg.Validate()
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("Name", func() {
		It("should identify the source for logging", func() {
			src := sources.NewAWS(nil, "my-secret")
			Expect(src.Name()).To(Equal("AWS Secrets Manager"))
		})
	})
})
