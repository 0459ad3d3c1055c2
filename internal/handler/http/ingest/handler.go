// Package ingest exposes the ingestion pipelines over HTTP so an external
// scheduler can trigger them.
package ingest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/observability/logging"
	ingestUC "venture-feed/internal/usecase/ingest"
	"venture-feed/internal/usecase/merge"
)

// Runner runs one pipeline at a time. *ingest.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, kind ingestUC.Kind) (*ingestUC.RunStats, error)
}

// CofounderUpdater applies bulk cofounder updates. *merge.Resolver satisfies it.
type CofounderUpdater interface {
	SetCofounderLinkedIns(ctx context.Context, updates []merge.CofounderUpdate) (int, error)
}

var errUnauthorized = errors.New("unauthorized")

// RequireSecret rejects requests whose Authorization header is not
// "Bearer <secret>". An empty secret disables the check.
func RequireSecret(secret string, next http.Handler) http.Handler {
	if secret == "" {
		return next
	}
	want := []byte("Bearer " + secret)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := []byte(strings.TrimSpace(r.Header.Get("Authorization")))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			logging.FromContext(r.Context()).Warn("ingest trigger rejected",
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))
			respond.Error(w, http.StatusUnauthorized, errUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type RunHandler struct{ Runner Runner }

// ServeHTTP 取り込み実行
// @Summary      取り込み実行
// @Description  指定したパイプラインを1回実行し、統計を返します。実行中に呼ばれた場合は 409 を返します。
// @Tags         ingest
// @Security     CronSecret
// @Produce      json
// @Param        kind  path  string  true  "news, research, accelerators, events, backfill-startups"
// @Success      200 {object} ingestUC.RunStats
// @Failure      400 {object} respond.ErrorBody "不明な kind"
// @Failure      401 {object} respond.ErrorBody "CRON_SECRET 不一致"
// @Failure      409 {object} respond.ErrorBody "実行中"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /ingest/{kind} [post]
func (h RunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	kind, err := ingestUC.ParseKind(r.PathValue("kind"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := h.Runner.Run(r.Context(), kind)
	switch {
	case errors.Is(err, ingestUC.ErrRunInProgress):
		respond.FromError(w, respond.NewAppError(http.StatusConflict, "ingestion run already in progress", nil))
		return
	case err != nil:
		logger.Error("ingestion run failed",
			slog.String("kind", string(kind)),
			slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

// CofounderRequest is the body of POST /ingest/cofounder-linkedins.
type CofounderRequest struct {
	Updates []merge.CofounderUpdate `json:"updates"`
}

// CofounderResponse reports how many rows were updated.
type CofounderResponse struct {
	Total   int `json:"total" example:"3"`
	Updated int `json:"updated" example:"2"`
}

type CofounderHandler struct{ Resolver CofounderUpdater }

// ServeHTTP 共同創業者 LinkedIn 一括更新
// @Summary      共同創業者 LinkedIn 一括更新
// @Description  startup_id または startup_name（大文字小文字無視）で対象を特定し、cofounder_linkedins を置き換えます。
// @Tags         ingest
// @Security     CronSecret
// @Accept       json
// @Produce      json
// @Param        body  body  CofounderRequest  true  "更新内容"
// @Success      200 {object} CofounderResponse
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Failure      401 {object} respond.ErrorBody "CRON_SECRET 不一致"
// @Router       /ingest/cofounder-linkedins [post]
func (h CofounderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CofounderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if len(req.Updates) == 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("updates must be a non-empty array"))
		return
	}

	updated, err := h.Resolver.SetCofounderLinkedIns(r.Context(), req.Updates)
	if err != nil {
		// 失敗した行はスキップ扱い
		logging.FromContext(r.Context()).Warn("cofounder update partially failed",
			slog.Int("updated", updated),
			slog.String("error", respond.SanitizeError(err)))
	}
	respond.JSON(w, http.StatusOK, CofounderResponse{Total: len(req.Updates), Updated: updated})
}

// Register registers the ingest routes. secret guards every route when set.
func Register(mux *http.ServeMux, runner Runner, resolver CofounderUpdater, secret string) {
	mux.Handle("POST /ingest/cofounder-linkedins", RequireSecret(secret, CofounderHandler{resolver}))
	mux.Handle("POST /ingest/{kind}", RequireSecret(secret, RunHandler{runner}))
}
