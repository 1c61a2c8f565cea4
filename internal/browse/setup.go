package browse

import (
	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/config"
	"github.com/andytrench/history-media-hunter/internal/model"
)

// NewFromConfig assembles the source chain, progress store and session for
// one user from service configuration. The remote grade source is only
// added when a catalog URL is configured; the snapshot directory and the
// local progress file serve as fallbacks either way. An unset catalog URL
// makes every remote progress call fail at the transport, which lands on
// the same local-fallback path as an unreachable backend.
func NewFromConfig(cfg *config.Config, user *model.User, log zerolog.Logger) *Session {
	var sources []Source
	if cfg.CatalogURL != "" {
		sources = append(sources, NewRemoteSource(cfg.CatalogURL, nil))
	}
	sources = append(sources, NewSnapshotSource(cfg.SnapshotDir))

	store := NewStore(NewRemoteProgress(cfg.CatalogURL, nil), NewLocalSnapshot(cfg.DataDir), log)
	return NewSession(user, NewLoader(log, sources...), store, log)
}
