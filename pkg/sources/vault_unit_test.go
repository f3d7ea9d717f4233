//go:build unit

package sources_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/animalet/entorn-go/pkg/sources"
)

var _ = Describe("Vault source", func() {
	Context("VaultConfig Validate", func() {
		It("should return error if address is empty", func() {
			cfg := sources.VaultConfig{
				Token: "token",
				Path:  "secret/data/myapp",
			}
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Vault address is required"))
		})

		It("should return error if token is empty", func() {
			cfg := sources.VaultConfig{
				Address: "https://vault.example.com",
				Path:    "secret/data/myapp",
			}
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Vault token is required"))
		})

		It("should return error if path is empty", func() {
			cfg := sources.VaultConfig{
				Address: "https://vault.example.com",
				Token:   "token",
			}
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Vault path is required"))
		})

		It("should pass with valid config", func() {
			cfg := sources.VaultConfig{
				Address: "https://vault.example.com",
				Token:   "token",
				Path:    "secret/data/myapp",
			}
			Expect(cfg.Validate()).NotTo(HaveOccurred())
		})
	})

	Context("NewVaultClient", func() {
		It("should reject a nil config", func() {
			client, err := sources.NewVaultClient(nil)
			Expect(err).To(HaveOccurred())
			Expect(client).To(BeNil())
		})

		It("should reject an invalid config", func() {
			client, err := sources.NewVaultClient(&sources.VaultConfig{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid Vault configuration"))
			Expect(client).To(BeNil())
		})

		It("should create a client from a valid config", func() {
			client, err := sources.NewVaultClient(&sources.VaultConfig{
				Address:   "https://vault.example.com",
				Token:     "token",
				Path:      "secret/data/myapp",
				Namespace: "myns",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(client).NotTo(BeNil())
			Expect(client.Address()).To(Equal("https://vault.example.com"))
		})
	})

	Context("Name", func() {
		It("should identify the source for logging", func() {
			client, err := sources.NewVaultClient(&sources.VaultConfig{
				Address: "https://vault.example.com",
				Token:   "token",
				Path:    "secret/data/myapp",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sources.NewVault(client, "secret/data/myapp").Name()).To(Equal("Vault"))
		})
	})
})
