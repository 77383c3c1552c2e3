package snapshot

import (
	"context"

	"github.com/matsim-eth/python-matsim/discovery"
	"github.com/matsim-eth/python-matsim/discovery/manifest"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Source is a discovery source reading one stored snapshot.
type Source struct {
	store *Store
	id    string
}

var _ discovery.Source = (*Source)(nil)

// Source returns a discovery source over snapshot id. The empty id selects
// the latest snapshot at discovery time.
func (s *Store) Source(id string) *Source {
	return &Source{store: s, id: id}
}

func (src *Source) Name() string {
	if src.id == "" {
		return "snapshot:latest"
	}
	return "snapshot:" + src.id
}

func (src *Source) Types(ctx context.Context) ([]typeinfo.Handle, error) {
	id := src.id
	if id == "" {
		latest, err := src.store.Latest(ctx)
		if err != nil {
			return nil, err
		}
		id = latest.ID
	}
	m, err := src.store.Manifest(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := manifest.NewUniverse(m)
	if err != nil {
		return nil, err
	}
	return u.Handles(), nil
}
