// Package http provides http transport for level search
package http

import (
	stdhttp "net/http"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	perr "github.com/sspenst/thinky.gg-sub004/internal/platform/errors"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	pnet "github.com/sspenst/thinky.gg-sub004/internal/platform/net"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/net/http/bind"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"
	svc "github.com/sspenst/thinky.gg-sub004/internal/services/api/search/service"
)

// MsgMethodNotAllowed is the body of a non-GET search
const MsgMethodNotAllowed = "Method not allowed"

// Register mounts the search endpoint on the given router
// every method reaches the handler so non-GET requests get a JSON 405
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Any(r, "/", h.search)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /search Search searchLevels
// @Summary Search levels
// @Description One page of 20 levels and the size of the filtered set. Invalid parameters fall back to defaults.
// @Tags Search
// @Produce json
// @Param search query string false "Name text"
// @Param searchAuthor query string false "Exact author name"
// @Param min_steps query integer false "Lowest leastMoves, needs max_steps"
// @Param max_steps query integer false "Highest leastMoves, needs min_steps"
// @Param time_range query string false "Lookback window" Enums(Day, Week, Month, Year, All)
// @Param sort_by query string false "Sort column" Enums(least_moves, ts, reviews_score, total_reviews, players_beaten, calc_difficulty_estimate)
// @Param sort_dir query string false "asc or desc" Enums(asc, desc)
// @Param page query integer false "1-based page"
// @Param show_filter query string false "Progress filter, needs a session" Enums(hide_won, only_attempted)
// @Param block_filter query integer false "Bitmask of excluded tiles: 1 block, 2 hole, 4 restricted"
// @Param difficulty_filter query string false "Difficulty band name"
// @Success 200 {object} domain.Result "ok"
// @Failure 405 {object} phttp.ErrorBody "Method not allowed"
// @Failure 500 {object} phttp.ErrorBody "Error querying Levels"
// @Router /search [get]
func (h *handlers) search(r *stdhttp.Request) httpkit.Response {
	if r.Method != stdhttp.MethodGet {
		return httpkit.BareError(perr.MethodNotAllowedf(MsgMethodNotAllowed))
	}
	ctx := r.Context()

	in, issues := bind.Query[domain.SearchParams](r)
	if len(issues) > 0 {
		ev := logger.C(ctx).Debug().Str("component", "search")
		for _, is := range issues {
			ev = ev.Str("param."+is.Field, is.Message)
		}
		ev.Msg("search params reset to defaults")
	}

	out, err := h.svc.Search(ctx, in, pnet.UserID(ctx))
	if err != nil {
		return httpkit.BareError(err)
	}
	return httpkit.BareOK(out)
}
