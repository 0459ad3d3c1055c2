package overlay

import (
	"net/http"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/handler/http/signal"
	overlayUC "venture-feed/internal/usecase/overlay"
)

type StarredHandler struct{ Svc Service }

// ServeHTTP スター付きスタートアップ一覧
// @Summary      スター付きスタートアップ一覧
// @Tags         overlay
// @Produce      json
// @Param        userId  query  string  false  "ユーザーID"
// @Success      200 {object} StarredResponse
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /starred [get]
func (h StarredHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startups, err := h.Svc.ListStarred(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		fail(w, r, "list starred failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, StarredResponse{Startups: signal.ToStartupDTOs(startups)})
}

type StarHandler struct{ Svc Service }

// ServeHTTP スタートアップにスターを付ける
// @Summary      スター付与
// @Description  名前（大文字小文字無視）で既存の企業を探し、無ければスコア0で作成してからスターを付けます。
// @Tags         overlay
// @Accept       json
// @Produce      json
// @Param        body  body  StarRequest  true  "対象スタートアップ"
// @Success      200 {object} StarResponse
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /star [post]
func (h StarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req StarRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, "invalid star body", err)
		return
	}
	startup, err := h.Svc.Star(r.Context(), overlayUC.StarInput{
		UserID:     req.UserID,
		Name:       req.StartupName,
		Website:    req.StartupWebsite,
		SectorTags: req.SectorTags,
	})
	if err != nil {
		fail(w, r, "star failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, StarResponse{StartupID: startup.ID})
}

type UnstarHandler struct{ Svc Service }

// ServeHTTP スター解除
// @Summary      スター解除
// @Tags         overlay
// @Produce      json
// @Param        userId     query  string  false  "ユーザーID"
// @Param        startupId  query  int     true   "スタートアップID"
// @Success      200 {object} OKResponse
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Router       /star [delete]
func (h UnstarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "startupId")
	if err != nil {
		fail(w, r, "invalid unstar", err)
		return
	}
	if err := h.Svc.Unstar(r.Context(), r.URL.Query().Get("userId"), id); err != nil {
		fail(w, r, "unstar failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, OKResponse{OK: true})
}

type SubscriptionsHandler struct{ Svc Service }

// ServeHTTP 通知対象スタートアップ一覧
// @Summary      通知対象スタートアップ一覧
// @Tags         notifications
// @Produce      json
// @Param        userId  query  string  false  "ユーザーID"
// @Success      200 {object} SubscriptionsResponse
// @Router       /notifications/startups [get]
func (h SubscriptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Svc.ListSubscriptions(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		fail(w, r, "list subscriptions failed", err)
		return
	}
	ids := make([]int64, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.StartupID)
	}
	respond.JSON(w, http.StatusOK, SubscriptionsResponse{StartupIDs: ids})
}

type SubscribeHandler struct{ Svc Service }

// ServeHTTP 通知登録
// @Summary      通知登録
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body  SubscriptionRequest  true  "対象スタートアップ"
// @Success      201 {object} OKResponse
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Router       /notifications/startups [post]
func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, "invalid subscription body", err)
		return
	}
	if err := h.Svc.Subscribe(r.Context(), req.UserID, req.StartupID); err != nil {
		fail(w, r, "subscribe failed", err)
		return
	}
	respond.JSON(w, http.StatusCreated, OKResponse{OK: true})
}

type UnsubscribeHandler struct{ Svc Service }

// ServeHTTP 通知解除
// @Summary      通知解除
// @Tags         notifications
// @Produce      json
// @Param        userId     query  string  false  "ユーザーID"
// @Param        startupId  query  int     true   "スタートアップID"
// @Success      200 {object} OKResponse
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Router       /notifications/startups [delete]
func (h UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "startupId")
	if err != nil {
		fail(w, r, "invalid unsubscribe", err)
		return
	}
	if err := h.Svc.Unsubscribe(r.Context(), r.URL.Query().Get("userId"), id); err != nil {
		fail(w, r, "unsubscribe failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, OKResponse{OK: true})
}

type GetPreferencesHandler struct{ Svc Service }

// ServeHTTP ダイジェスト設定取得
// @Summary      ダイジェスト設定取得
// @Description  未保存のユーザーには daily・無効の既定値を返します。
// @Tags         notifications
// @Produce      json
// @Param        userId  query  string  false  "ユーザーID"
// @Success      200 {object} PreferencesDTO
// @Router       /notifications/preferences [get]
func (h GetPreferencesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pref, err := h.Svc.GetPreferences(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		fail(w, r, "get preferences failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, toPreferencesDTO(pref))
}

type PutPreferencesHandler struct{ Svc Service }

// ServeHTTP ダイジェスト設定更新
// @Summary      ダイジェスト設定更新
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body  PreferencesDTO  true  "設定"
// @Success      200 {object} PreferencesDTO
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Router       /notifications/preferences [put]
func (h PutPreferencesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req PreferencesDTO
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, "invalid preferences body", err)
		return
	}
	pref, err := h.Svc.UpdatePreferences(r.Context(), entity.NotificationPreference{
		UserID:        req.UserID,
		Email:         req.Email,
		DigestEnabled: req.DigestEnabled,
		Frequency:     entity.DigestFrequency(req.Frequency),
	})
	if err != nil {
		fail(w, r, "update preferences failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, toPreferencesDTO(pref))
}
