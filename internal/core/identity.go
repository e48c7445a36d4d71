package core

import (
	"fmt"
	"os/user"
	"strconv"
)

// IdentityResolver maps the policy's owner and group names to numeric ids.
// Resolution happens once per run; a failed resolution does not stop the
// sweep, it surfaces as per-entry ownership failures.
type IdentityResolver interface {
	Resolve(owner, group string) (uid, gid int, err error)
}

// OSIdentityResolver resolves names against the local user and group
// databases.
type OSIdentityResolver struct{}

// NewOSIdentityResolver creates a resolver backed by os/user.
func NewOSIdentityResolver() *OSIdentityResolver {
	return &OSIdentityResolver{}
}

// Resolve looks up owner and group by name.
func (r *OSIdentityResolver) Resolve(owner, group string) (int, int, error) {
	u, err := user.Lookup(owner)
	if err != nil {
		return 0, 0, fmt.Errorf("unknown user %q: %w", owner, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf("non-numeric uid for %q: %w", owner, err)
	}
	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, 0, fmt.Errorf("unknown group %q: %w", group, err)
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, 0, fmt.Errorf("non-numeric gid for %q: %w", group, err)
	}
	return uid, gid, nil
}

// StaticIdentityResolver returns fixed ids, or a fixed error. Used by tests
// and by environments where the target pair is known up front.
type StaticIdentityResolver struct {
	UID int
	GID int
	Err error
}

// Resolve returns the configured ids or error regardless of the names.
func (r *StaticIdentityResolver) Resolve(string, string) (int, int, error) {
	if r.Err != nil {
		return 0, 0, r.Err
	}
	return r.UID, r.GID, nil
}

// Compile-time interface satisfaction checks.
var (
	_ IdentityResolver = (*OSIdentityResolver)(nil)
	_ IdentityResolver = (*StaticIdentityResolver)(nil)
)
