package merge

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sqmerge/sqmerge/pkg/github"
	"github.com/sqmerge/sqmerge/pkg/log"
)

// UserFetcher is the profile lookup surface the resolver needs.
type UserFetcher interface {
	GetUser(ctx context.Context, login string) (*github.User, error)
}

// ContactResolver turns GitHub logins into display contact strings.
type ContactResolver struct {
	fetcher   UserFetcher
	overrides map[string]string
}

// NewContactResolver creates a resolver. overrides maps login to a
// preferred email address; a login absent from the map defers to the
// profile email.
func NewContactResolver(fetcher UserFetcher, overrides map[string]string) *ContactResolver {
	return &ContactResolver{fetcher: fetcher, overrides: overrides}
}

// Resolve looks up every login concurrently and returns a map from
// login to contact string. Lookups are independent; the first failure
// cancels the rest and is returned.
func (r *ContactResolver) Resolve(ctx context.Context, logins []string) (map[string]string, error) {
	contacts := make(map[string]string, len(logins))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, login := range logins {
		login := login
		g.Go(func() error {
			user, err := r.fetcher.GetUser(ctx, login)
			if err != nil {
				return err
			}
			contact := r.contact(login, user)
			log.Debugw("resolved contact", "login", login, "contact", contact)

			mu.Lock()
			contacts[login] = contact
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contacts, nil
}

// contact formats one display string: the profile name when available,
// else the raw login, with an email suffix from the override mapping
// first and the profile email second. No email means no suffix.
func (r *ContactResolver) contact(login string, user *github.User) string {
	display := user.Name
	if display == "" {
		display = login
	}

	email, overridden := r.overrides[login]
	if !overridden || email == "" {
		email = user.Email
	}
	if email == "" {
		return display
	}
	return display + " <" + email + ">"
}
