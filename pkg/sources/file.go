// Package sources provides env.Source implementations beyond the process
// environment: secrets-dir files, HashiCorp Vault and AWS Secrets Manager.
// Register them under a prefix to make their keys resolvable:
//
//	env.RegisterSource("file", sources.NewFile("/run/secrets"))
//	env.RegisterSource("vault", sources.NewVault(client, "secret/data/myapp"))
package sources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// File reads values from files in a configured directory. Useful for Docker
// secrets, Kubernetes secrets, or local development.
//
// The key names a file inside the directory; its contents are trimmed of
// surrounding whitespace. A missing file means the key is not set.
type File struct {
	dir string
}

// NewFile creates a file-based source reading from dir.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Lookup reads the value from <dir>/<key>. Keys must stay inside the
// configured directory: absolute paths and path traversal are rejected.
func (f *File) Lookup(key string) (string, bool, error) {
	if f.dir == "" {
		return "", false, errors.New("no secrets directory configured")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errors.New("no file specified for file secret")
	}

	// Reject absolute paths
	if filepath.IsAbs(key) {
		return "", false, errors.New("invalid key: absolute paths not allowed")
	}

	// Sanitize the key to prevent path traversal
	cleanKey := filepath.Clean(key)
	if strings.Contains(cleanKey, "..") {
		return "", false, errors.New("invalid key: path traversal detected")
	}

	path := filepath.Join(f.dir, cleanKey)

	// Verify the resolved path is within the secrets directory
	absDir, err := filepath.Abs(f.dir)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve secrets directory")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve secret file path")
	}

	if !strings.HasPrefix(absPath, absDir+string(filepath.Separator)) {
		return "", false, errors.New("invalid key: outside secrets directory")
	}

	// #nosec G304 -- Path traversal is prevented by validation above
	content, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "error reading secret file %q", absPath)
	}

	log.Debug().Str("file", absPath).Msg("Retrieved value from file")
	return strings.TrimSpace(string(content)), true, nil
}

// Name returns the source name
func (f *File) Name() string {
	return "File"
}

// FileConfig holds configuration for the file-based source.
type FileConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// Validate checks if the FileConfig has all required fields set and points at
// an existing directory.
func (f FileConfig) Validate() error {
	if f.Dir == "" {
		return errors.New("dir is required for the file source")
	}

	info, err := os.Stat(f.Dir)
	if os.IsNotExist(err) {
		return errors.Errorf("dir %q does not exist", f.Dir)
	}
	if err != nil {
		return errors.Wrapf(err, "error accessing dir %q", f.Dir)
	}
	if !info.IsDir() {
		return errors.Errorf("dir %q is not a directory", f.Dir)
	}
	return nil
}
