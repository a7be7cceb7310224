// Package module wires level search into the API using modkit
package module

import (
	"fmt"
	"os"
	"time"

	modkit "github.com/sspenst/thinky.gg-sub004/internal/modkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/repokit"
	str "github.com/sspenst/thinky.gg-sub004/internal/platform/strings"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"
	searchhttp "github.com/sspenst/thinky.gg-sub004/internal/services/api/search/http"
	searchrepo "github.com/sspenst/thinky.gg-sub004/internal/services/api/search/repo"
	searchsvc "github.com/sspenst/thinky.gg-sub004/internal/services/api/search/service"

	"github.com/google/uuid"
)

// Module implements the modkit.Module interface
type Module struct {
	built   modkit.Built
	backend string
	svc     searchsvc.Service
	ports   Ports
}

// New constructs the search module over the store o.Backend names
// it panics when that store is not configured in deps
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("search"), modkit.WithPrefix("/search")}, opts...)...)

	repos, err := reposFor(deps, o)
	if err != nil {
		panic(fmt.Sprintf("search module: %v", err))
	}
	if deps.KV != nil {
		repos.Completions = searchrepo.NewCachedCompletions(repos.Completions, deps.KV, o.CacheTTL)
	}
	svc := searchsvc.New(repos, searchsvc.WithQueryTimeout(o.QueryTimeout))

	deps.Log.Info().
		Str("component", "search").
		Str("backend", o.Backend).
		Bool("cache", deps.KV != nil && o.CacheTTL > 0).
		Dur("query_timeout", o.QueryTimeout).
		Msg("search module ready")

	return &Module{
		built:   b,
		backend: o.Backend,
		svc:     svc,
		ports:   Ports{Search: svc},
	}
}

func reposFor(deps modkit.Deps, o Options) (domain.Repos, error) {
	switch o.Backend {
	case BackendPG:
		if deps.PG == nil {
			return domain.Repos{}, fmt.Errorf("backend %q needs SERVICE_PGSQL_DBURL", o.Backend)
		}
		return repokit.MustBind(searchrepo.NewPG(), deps.PG), nil
	case BackendMemory:
		ds, err := loadFixture(o.Fixture)
		if err != nil {
			return domain.Repos{}, err
		}
		return searchrepo.NewMemory(ds).Repos(), nil
	case BackendMongo, "":
		if deps.Mongo == nil {
			return domain.Repos{}, fmt.Errorf("backend %q needs SERVICE_MONGO_URI", BackendMongo)
		}
		return searchrepo.NewMongo(deps.Mongo).Repos(), nil
	}
	return domain.Repos{}, fmt.Errorf("unknown backend %q", o.Backend)
}

func loadFixture(path string) (searchrepo.Dataset, error) {
	if path == "" {
		return searchrepo.Dataset{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return searchrepo.Dataset{}, err
	}
	defer f.Close()
	fx, err := searchrepo.ReadFixture(f)
	if err != nil {
		return searchrepo.Dataset{}, err
	}
	return fx.Resolve(uuid.NewString, time.Now().Unix())
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { searchhttp.Register(rr, m.svc) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Backend names the store the module reads
func (m *Module) Backend() string { return m.backend }
