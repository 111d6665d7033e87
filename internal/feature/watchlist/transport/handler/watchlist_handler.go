// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/feature/watchlist/domain/entity"
	"journal_backend/internal/feature/watchlist/transport/http/dto"
	"journal_backend/internal/feature/watchlist/usecase"
	jwtmw "journal_backend/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリストに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	ListItems(ctx context.Context, userID uint) ([]entity.WatchlistItem, error)
	AddItem(ctx context.Context, item *entity.WatchlistItem) error
	UpdateItem(ctx context.Context, item *entity.WatchlistItem) error
	RemoveItem(ctx context.Context, userID, id uint) error
}

// WatchlistHandler はウォッチリストに関するHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

func userID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return 0, false
	}
	return id, true
}

func toResponse(item entity.WatchlistItem) dto.WatchlistItemResponse {
	resp := dto.WatchlistItemResponse{
		ID:      item.ID,
		Symbol:  item.Symbol,
		Note:    item.Note,
		SortKey: item.SortKey,
	}
	if item.TargetPrice.Valid {
		p := item.TargetPrice.Decimal
		resp.TargetPrice = &p
	}
	return resp
}

func fromRequest(req dto.WatchlistItemRequest, uid uint) *entity.WatchlistItem {
	item := &entity.WatchlistItem{
		UserID:  uid,
		Symbol:  req.Symbol,
		Note:    req.Note,
		SortKey: req.SortKey,
	}
	if req.TargetPrice != nil {
		item.TargetPrice.Decimal = *req.TargetPrice
		item.TargetPrice.Valid = true
	}
	return item
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrDuplicateSymbol):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrEmptySymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// List は GET /watchlist を処理します。
func (h *WatchlistHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	items, err := h.uc.ListItems(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.WatchlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	c.JSON(http.StatusOK, out)
}

// Add は POST /watchlist を処理します。重複銘柄は409を返します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req dto.WatchlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := fromRequest(req, uid)
	if err := h.uc.AddItem(c.Request.Context(), item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(*item))
}

// Update は PUT /watchlist/:id を処理します。
func (h *WatchlistHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req dto.WatchlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := fromRequest(req, uid)
	item.ID = uint(id)
	item.IsActive = true
	if err := h.uc.UpdateItem(c.Request.Context(), item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*item))
}

// Remove は DELETE /watchlist/:id を処理します。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.uc.RemoveItem(c.Request.Context(), uid, uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
