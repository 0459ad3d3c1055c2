package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/handler/http/pathutil"
	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/observability/logging"
	overlayUC "venture-feed/internal/usecase/overlay"
)

// Service is the overlay use case surface. *overlay.Service satisfies it.
type Service interface {
	ListPins(ctx context.Context, userID string) ([]entity.ItemRef, error)
	Pin(ctx context.Context, ref entity.ItemRef) error
	Unpin(ctx context.Context, ref entity.ItemRef) error
	ListDismissed(ctx context.Context, userID string) ([]entity.ItemRef, error)
	Dismiss(ctx context.Context, ref entity.ItemRef) error
	Undismiss(ctx context.Context, ref entity.ItemRef) error

	ListStarred(ctx context.Context, userID string) ([]*entity.Startup, error)
	Star(ctx context.Context, in overlayUC.StarInput) (*entity.Startup, error)
	Unstar(ctx context.Context, userID string, startupID int64) error

	ListSubscriptions(ctx context.Context, userID string) ([]entity.Subscription, error)
	Subscribe(ctx context.Context, userID string, startupID int64) error
	Unsubscribe(ctx context.Context, userID string, startupID int64) error

	GetPreferences(ctx context.Context, userID string) (*entity.NotificationPreference, error)
	UpdatePreferences(ctx context.Context, pref entity.NotificationPreference) (*entity.NotificationPreference, error)
}

var errInvalidBody = fmt.Errorf("%w: body must be valid JSON", entity.ErrInvalidInput)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: body too large", entity.ErrInvalidInput)
		}
		return errInvalidBody
	}
	return nil
}

func queryID(r *http.Request, field string) (int64, error) {
	id, err := pathutil.ParseID(r.URL.Query().Get(field))
	if err != nil {
		return 0, &entity.ValidationError{Field: field, Message: field + " must be a positive integer"}
	}
	return id, nil
}

func fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger := logging.FromContext(r.Context())
	if respond.StatusOf(err) >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", respond.SanitizeError(err)))
	} else {
		logger.Info(msg, slog.String("error", err.Error()))
	}
	respond.FromError(w, err)
}

// refSet binds the generic item handlers to pins or dismissals.
type refSet struct {
	name   string
	list   func(ctx context.Context, userID string) ([]entity.ItemRef, error)
	add    func(ctx context.Context, ref entity.ItemRef) error
	remove func(ctx context.Context, ref entity.ItemRef) error
	wrap   func([]ItemRefDTO) any
}

func pinSet(svc Service) refSet {
	return refSet{
		name:   "pins",
		list:   svc.ListPins,
		add:    svc.Pin,
		remove: svc.Unpin,
		wrap:   func(d []ItemRefDTO) any { return PinsResponse{Pins: d} },
	}
}

func dismissedSet(svc Service) refSet {
	return refSet{
		name:   "dismissed",
		list:   svc.ListDismissed,
		add:    svc.Dismiss,
		remove: svc.Undismiss,
		wrap:   func(d []ItemRefDTO) any { return DismissedResponse{Dismissed: d} },
	}
}

type ListRefsHandler struct{ set refSet }

// ServeHTTP ピン留め・非表示一覧取得
// @Summary      ピン留め・非表示一覧取得
// @Description  ユーザーがピン留め（/pins）または非表示（/dismissed）にした項目を新しい順に返します。
// @Tags         overlay
// @Produce      json
// @Param        userId  query  string  false  "ユーザーID（省略時はデモユーザー）"
// @Success      200 {object} PinsResponse
// @Failure      400 {object} respond.ErrorBody "不正な userId"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /pins [get]
// @Router       /dismissed [get]
func (h ListRefsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	refs, err := h.set.list(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		fail(w, r, "list "+h.set.name+" failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.set.wrap(toItemRefDTOs(refs)))
}

type AddRefHandler struct{ set refSet }

// ServeHTTP ピン留め・非表示追加
// @Summary      ピン留め・非表示追加
// @Description  同じ項目を再度追加しても重複しません。
// @Tags         overlay
// @Accept       json
// @Produce      json
// @Param        body  body  ItemRefRequest  true  "対象項目"
// @Success      201 {object} ItemRefDTO
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /pins [post]
// @Router       /dismissed [post]
func (h AddRefHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ItemRefRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, "invalid "+h.set.name+" body", err)
		return
	}
	ref := entity.ItemRef{UserID: req.UserID, ItemType: entity.ItemType(req.ItemType), ItemID: req.ItemID}
	if err := h.set.add(r.Context(), ref); err != nil {
		fail(w, r, "add to "+h.set.name+" failed", err)
		return
	}
	respond.JSON(w, http.StatusCreated, ItemRefDTO{ItemType: req.ItemType, ItemID: req.ItemID})
}

type RemoveRefHandler struct{ set refSet }

// ServeHTTP ピン留め・非表示解除
// @Summary      ピン留め・非表示解除
// @Tags         overlay
// @Produce      json
// @Param        userId    query  string  false  "ユーザーID"
// @Param        itemType  query  string  true   "article, event, research, startup"
// @Param        itemId    query  int     true   "項目ID"
// @Success      200 {object} OKResponse
// @Failure      400 {object} respond.ErrorBody "不正なリクエスト"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /pins [delete]
// @Router       /dismissed [delete]
func (h RemoveRefHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "itemId")
	if err != nil {
		fail(w, r, "invalid "+h.set.name+" delete", err)
		return
	}
	q := r.URL.Query()
	ref := entity.ItemRef{UserID: q.Get("userId"), ItemType: entity.ItemType(q.Get("itemType")), ItemID: id}
	if err := h.set.remove(r.Context(), ref); err != nil {
		fail(w, r, "remove from "+h.set.name+" failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, OKResponse{OK: true})
}
