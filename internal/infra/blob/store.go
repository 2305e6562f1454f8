// Package blob provides the asset store used for uploaded files.
// A Store is backed either by a MinIO bucket or by a local directory,
// selected explicitly at startup from environment configuration and
// injected into the services that need it. Every operation is keyed by
// the opaque stored key, never by a user-supplied filename.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Store is the uniform contract over an asset class's byte blobs.
type Store interface {
	// Put durably stores data under key. contentType may be empty.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// GetStream opens a streaming read of the blob.
	// Returns (nil, nil) when the key does not exist.
	GetStream(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob. A missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// ErrInvalidKey is returned for keys that could escape the class prefix.
// Stored keys are generated server-side, so hitting this indicates a bug.
var ErrInvalidKey = errors.New("invalid stored key")

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// FromEnv builds the Store for one asset class ("resumes", "templates").
// MinIO is used when an endpoint and credentials are configured, with
// per-class overrides (e.g. MINIO_ENDPOINT_TEMPLATES) taking precedence so
// the two classes can run on different credentials. Otherwise the store
// falls back to a local directory under UPLOADS_DIR.
//
// On an ephemeral runtime (EPHEMERAL_RUNTIME truthy) the local fallback is
// refused: writes to a non-persistent disk would vanish on redeploy, so
// construction fails with an operator-facing message instead.
func FromEnv(class string) (Store, error) {
	endpoint := classEnv(class, "MINIO_ENDPOINT")
	accessKey := classEnv(class, "MINIO_ACCESS_KEY")
	secretKey := classEnv(class, "MINIO_SECRET_KEY")

	if endpoint != "" && accessKey != "" && secretKey != "" {
		bucket := classEnv(class, "MINIO_BUCKET")
		if bucket == "" {
			bucket = "personal-site"
		}
		secure, _ := strconv.ParseBool(classEnv(class, "MINIO_SECURE"))
		return NewMinioStore(endpoint, accessKey, secretKey, secure, bucket, class)
	}

	if ephemeral, _ := strconv.ParseBool(os.Getenv("EPHEMERAL_RUNTIME")); ephemeral {
		return nil, fmt.Errorf(
			"blob storage not configured for %s: running on an ephemeral filesystem without object storage; "+
				"set MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY (or their %s_* overrides)",
			class, strings.ToUpper(class))
	}

	baseDir := os.Getenv("UPLOADS_DIR")
	if baseDir == "" {
		baseDir = "."
	}
	return NewLocalStore(baseDir, class), nil
}

// classEnv looks up NAME_<CLASS> first, then NAME.
func classEnv(class, name string) string {
	if v := os.Getenv(name + "_" + strings.ToUpper(class)); v != "" {
		return v
	}
	return os.Getenv(name)
}
