package signal

import (
	"context"
	"log/slog"
	"net/http"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/handler/http/pathutil"
	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/usecase/query"
)

// Querier is the read side consumed by this package. *query.Service satisfies it.
type Querier interface {
	ListArticles(ctx context.Context, q query.ArticleQuery) ([]*entity.Article, error)
	ListResearch(ctx context.Context, q query.ResearchQuery) ([]*entity.ResearchPaper, error)
	ListEvents(ctx context.Context, q query.EventQuery) ([]*entity.Event, error)
	ListStartups(ctx context.Context, q query.StartupQuery) ([]*entity.Startup, error)
	ListFeatured(ctx context.Context) ([]*entity.Startup, error)
	ExportCSV(ctx context.Context, typ string) (*query.Export, error)
}

func limitParam(r *http.Request) (int, error) {
	n, err := pathutil.ParseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		return 0, &entity.ValidationError{Field: "limit", Message: err.Error()}
	}
	return n, nil
}

func fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger := logging.FromContext(r.Context())
	if respond.StatusOf(err) >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", respond.SanitizeError(err)))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()))
	}
	respond.FromError(w, err)
}

type ArticlesHandler struct{ Svc Querier }

// ServeHTTP 記事一覧取得
// @Summary      記事一覧取得
// @Description  分類済みのニュース記事を新しい順（同日内は関連度順）で返します。
// @Tags         signals
// @Produce      json
// @Param        sector     query  string  false  "セクター (AI-native, Vertical SaaS, Fintech, Robotics, Other, All)"
// @Param        timeRange  query  string  false  "期間 (today_future, 7d, 30d, 90d, all)" default(all)
// @Param        stage      query  string  false  "ステージ (early_stage, growth_late_stage, public_pe)"
// @Param        limit      query  int     false  "最大件数" default(100) maximum(500)
// @Success      200 {array}  ArticleDTO
// @Failure      400 {object} respond.ErrorBody "不正なクエリパラメータ"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /articles [get]
func (h ArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		fail(w, r, "invalid article query", err)
		return
	}
	q := r.URL.Query()
	items, err := h.Svc.ListArticles(r.Context(), query.ArticleQuery{
		Sector:    q.Get("sector"),
		TimeRange: q.Get("timeRange"),
		Stage:     q.Get("stage"),
		Limit:     limit,
	})
	if err != nil {
		fail(w, r, "list articles failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, toArticleDTOs(items))
}

type ResearchHandler struct{ Svc Querier }

// ServeHTTP 研究論文一覧取得
// @Summary      研究論文一覧取得
// @Description  分類済みの arXiv 論文を返します。既定の期間は today_future です。
// @Tags         signals
// @Produce      json
// @Param        sector     query  string  false  "セクター"
// @Param        timeRange  query  string  false  "期間 (today_future, 7d, 30d, 90d, all)" default(today_future)
// @Param        limit      query  int     false  "最大件数" default(100) maximum(500)
// @Success      200 {array}  ResearchDTO
// @Failure      400 {object} respond.ErrorBody "不正なクエリパラメータ"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /research [get]
func (h ResearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		fail(w, r, "invalid research query", err)
		return
	}
	q := r.URL.Query()
	items, err := h.Svc.ListResearch(r.Context(), query.ResearchQuery{
		Sector:    q.Get("sector"),
		TimeRange: q.Get("timeRange"),
		Limit:     limit,
	})
	if err != nil {
		fail(w, r, "list research failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, toResearchDTOs(items))
}

type EventsHandler struct{ Svc Querier }

// ServeHTTP イベント一覧取得
// @Summary      イベント一覧取得
// @Description  today_future は今日以降を日付昇順、過去の期間は [today-N, today) を降順で返します。
// @Tags         signals
// @Produce      json
// @Param        city       query  string  false  "都市 (All で絞り込みなし)"
// @Param        timeRange  query  string  false  "期間 (today_future, 7d, 30d, 90d, all)" default(today_future)
// @Param        limit      query  int     false  "最大件数" default(100) maximum(500)
// @Success      200 {array}  EventDTO
// @Failure      400 {object} respond.ErrorBody "不正なクエリパラメータ"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /events [get]
func (h EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		fail(w, r, "invalid event query", err)
		return
	}
	q := r.URL.Query()
	items, err := h.Svc.ListEvents(r.Context(), query.EventQuery{
		City:      q.Get("city"),
		TimeRange: q.Get("timeRange"),
		Limit:     limit,
	})
	if err != nil {
		fail(w, r, "list events failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, toEventDTOs(items))
}

type StartupsHandler struct{ Svc Querier }

// ServeHTTP スタートアップ一覧取得
// @Summary      スタートアップ一覧取得
// @Description  総合スコアの降順で返します。view=news はアクセラレータ・大学に属さない企業のみ。
// @Tags         startups
// @Produce      json
// @Param        sector       query  string  false  "セクター"
// @Param        view         query  string  false  "ビュー (news, accelerators, academic)"
// @Param        accelerator  query  string  false  "アクセラレータ名"
// @Param        university   query  string  false  "大学名"
// @Param        limit        query  int     false  "最大件数" default(100) maximum(500)
// @Success      200 {array}  StartupDTO
// @Failure      400 {object} respond.ErrorBody "不正なクエリパラメータ"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /startups [get]
func (h StartupsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		fail(w, r, "invalid startup query", err)
		return
	}
	q := r.URL.Query()
	items, err := h.Svc.ListStartups(r.Context(), query.StartupQuery{
		Sector:      q.Get("sector"),
		View:        q.Get("view"),
		Accelerator: q.Get("accelerator"),
		University:  q.Get("university"),
		Limit:       limit,
	})
	if err != nil {
		fail(w, r, "list startups failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, ToStartupDTOs(items))
}

type FeaturedHandler struct{ Svc Querier }

// ServeHTTP 注目スタートアップ取得
// @Summary      注目スタートアップ取得
// @Description  featured フラグが立った企業をスコア順に上位50件返します。
// @Tags         startups
// @Produce      json
// @Success      200 {array}  StartupDTO
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /startups/featured [get]
func (h FeaturedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListFeatured(r.Context())
	if err != nil {
		fail(w, r, "list featured startups failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, ToStartupDTOs(items))
}
