package wecom

import (
	"context"
	"fmt"
	"slices"
)

// SuiteResolver returns the fetcher responsible for a suite.
type SuiteResolver interface {
	Suite(suiteID string) (AuthInfoFetcher, error)
}

// Registry holds one Client per configured suite.
type Registry struct {
	clients map[string]*Client
}

// NewRegistry builds a client for each suite. All clients share store and opts.
func NewRegistry(suites []SuiteConfig, store Store, opts ...Option) (*Registry, error) {
	r := &Registry{clients: make(map[string]*Client, len(suites))}
	for _, s := range suites {
		if _, dup := r.clients[s.SuiteID]; dup {
			return nil, fmt.Errorf("%w: duplicate suite %s", ErrInvalidSuiteConfig, s.SuiteID)
		}
		c, err := NewClient(s, store, opts...)
		if err != nil {
			return nil, err
		}
		r.clients[s.SuiteID] = c
	}
	return r, nil
}

// Client returns the concrete client for suiteID.
func (r *Registry) Client(suiteID string) (*Client, error) {
	c, ok := r.clients[suiteID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSuite, suiteID)
	}
	return c, nil
}

// Suite implements SuiteResolver.
func (r *Registry) Suite(suiteID string) (AuthInfoFetcher, error) {
	c, err := r.Client(suiteID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SetSuiteTicket stores a ticket pushed by WeCom for suiteID.
func (r *Registry) SetSuiteTicket(ctx context.Context, suiteID, ticket string) error {
	c, err := r.Client(suiteID)
	if err != nil {
		return err
	}
	return c.SetSuiteTicket(ctx, ticket)
}

// SuiteIDs lists configured suites in sorted order.
func (r *Registry) SuiteIDs() []string {
	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
