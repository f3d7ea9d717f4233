package sources

import (
	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// VaultConfig holds configuration for connecting to HashiCorp Vault
type VaultConfig struct {
	Address   string `yaml:"address" toml:"address"`
	Token     string `yaml:"token" toml:"token"`
	Path      string `yaml:"path" toml:"path"`
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// Validate checks if the VaultConfig has all required fields set
func (v VaultConfig) Validate() error {
	if v.Address == "" {
		return errors.New("Vault address is required")
	}
	if v.Token == "" {
		return errors.New("Vault token is required")
	}
	if v.Path == "" {
		return errors.New("Vault path is required")
	}
	return nil
}

// NewVaultClient creates and configures a Vault client from a VaultConfig.
// Typically called during startup to set up the Vault source.
//
// Example:
//
//	client, err := sources.NewVaultClient(&cfg.Vault)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("vault client")
//	}
//	env.RegisterSource("vault", sources.NewVault(client, cfg.Vault.Path))
func NewVaultClient(vaultCfg *VaultConfig) (*api.Client, error) {
	if vaultCfg == nil {
		return nil, errors.New("vault configuration is nil")
	}

	if err := vaultCfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid Vault configuration")
	}

	config := api.DefaultConfig()
	config.Address = vaultCfg.Address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vault client")
	}

	client.SetToken(vaultCfg.Token)

	if vaultCfg.Namespace != "" {
		client.SetNamespace(vaultCfg.Namespace)
	}

	return client, nil
}

// Vault retrieves values from HashiCorp Vault. Supports both KV v1 and
// KV v2 secret engines. The Vault path is fixed when creating the source;
// the key selects an entry in the secret data at that path.
type Vault struct {
	logical *api.Logical
	path    string
}

// NewVault creates a Vault-backed source.
//
// Parameters:
//   - client: Configured Vault API client
//   - path: The Vault path to read secrets from (e.g., "secret/data/myapp")
func NewVault(client *api.Client, path string) *Vault {
	return &Vault{
		logical: client.Logical(),
		path:    path,
	}
}

// Lookup retrieves a value from Vault. A missing secret or a key absent from
// the secret data means not found; a failed read is an error.
func (v *Vault) Lookup(key string) (string, bool, error) {
	secret, err := v.logical.Read(v.path)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read secret from Vault path %q", v.path)
	}

	if secret == nil || secret.Data == nil {
		return "", false, nil
	}

	// Handle both KV v1 and KV v2 formats
	var data map[string]interface{}
	if secret.Data["data"] != nil {
		// KV v2 format
		if dataMap, ok := secret.Data["data"].(map[string]interface{}); ok {
			data = dataMap
		} else {
			return "", false, errors.New("unexpected data format in KV v2 secret")
		}
	} else {
		// KV v1 format
		data = secret.Data
	}

	strValue, ok := data[key].(string)
	if !ok {
		return "", false, nil
	}

	log.Debug().
		Str("key", key).
		Str("vault_path", v.path).
		Msg("Retrieved value from Vault")
	return strValue, true, nil
}

// Name returns the source name
func (v *Vault) Name() string {
	return "Vault"
}
