package git

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultIdentity builds the signature for commits created on the user's
// behalf. GIT_AUTHOR_NAME and GIT_AUTHOR_EMAIL win over user.name and
// user.email from the local, global and system configuration.
func (r *Repository) DefaultIdentity(when time.Time) (object.Signature, error) {
	cfg, err := r.ConfigScoped(config.SystemScope)
	if err != nil {
		return object.Signature{}, fmt.Errorf("failed to read git config: %w", err)
	}

	name := cfg.User.Name
	email := cfg.User.Email
	if v := os.Getenv("GIT_AUTHOR_NAME"); v != "" {
		name = v
	}
	if v := os.Getenv("GIT_AUTHOR_EMAIL"); v != "" {
		email = v
	}
	if name == "" || email == "" {
		return object.Signature{}, fmt.Errorf("no identity configured: set user.name and user.email")
	}

	return object.Signature{Name: name, Email: email, When: when}, nil
}
