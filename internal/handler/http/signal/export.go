package signal

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/usecase/query"
)

type ExportHandler struct{ Svc Querier }

// ServeHTTP CSVエクスポート
// @Summary      CSVエクスポート
// @Description  articles は関連度上位500件（title,source,url,event_type,relevance_score,summary）、startups は name,website,sector_tags を返します。
// @Tags         export
// @Produce      text/csv
// @Param        type  query  string  false  "articles または startups" default(articles)
// @Success      200 {string} string "CSV"
// @Failure      400 {object} respond.ErrorBody "不明な type"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /export/csv [get]
func (h ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	export, err := h.Svc.ExportCSV(r.Context(), typ)
	if err != nil {
		if errors.Is(err, query.ErrUnknownExportType) {
			respond.SafeError(w, http.StatusBadRequest, errors.New("type must be articles or startups"))
			return
		}
		fail(w, r, "csv export failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Body); err != nil {
		logging.FromContext(r.Context()).Warn("csv write failed", slog.Any("error", err))
	}
}
