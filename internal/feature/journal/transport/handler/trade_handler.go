// Package handler はjournalフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"

	"journal_backend/internal/feature/journal/domain/entity"
	"journal_backend/internal/feature/journal/transport/http/dto"
	"journal_backend/internal/feature/journal/usecase"
	jwtmw "journal_backend/internal/platform/jwt"
)

// TradesUsecase はハンドラーが必要とするトレード操作を定義します。
type TradesUsecase interface {
	ListStockTrades(ctx context.Context, userID uint) ([]entity.StockTrade, error)
	CreateStockTrade(ctx context.Context, t *entity.StockTrade) error
	UpdateStockTrade(ctx context.Context, t *entity.StockTrade) error
	DeleteStockTrade(ctx context.Context, userID, id uint) error
	MergeStockTrades(ctx context.Context, userID uint, ids []uint) (*entity.StockTrade, error)
	ListOptionTrades(ctx context.Context, userID uint) ([]entity.OptionTrade, error)
	CreateOptionTrade(ctx context.Context, t *entity.OptionTrade) error
	UpdateOptionTrade(ctx context.Context, t *entity.OptionTrade) error
	DeleteOptionTrade(ctx context.Context, userID, id uint) error
}

// TradeHandler は株式・オプショントレードのCRUDとマージのエンドポイントを扱います。
type TradeHandler struct {
	usecase TradesUsecase
}

// NewTradeHandler は新しい TradeHandler を作成します。
func NewTradeHandler(u TradesUsecase) *TradeHandler {
	return &TradeHandler{usecase: u}
}

// currentUserID は認証ミドルウェアがセットしたユーザーIDを取り出します。
func currentUserID(c *gin.Context) (uint, bool) {
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

// pathID は /:id パスパラメータを解析します。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func toDatePtr(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	return &types.Date{Time: *t}
}

func toStockResponse(t entity.StockTrade) dto.StockTradeResponse {
	resp := dto.StockTradeResponse{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Side:       t.Side,
		Quantity:   t.Quantity,
		EntryPrice: t.EntryPrice,
		EntryDate:  types.Date{Time: t.EntryDate},
		ExitDate:   toDatePtr(t.ExitDate),
		Fees:       t.Fees,
		Notes:      t.Notes,
		Status:     t.Status,
		PnL:        t.RealizedPnL(),
	}
	if t.ExitPrice.Valid {
		p := t.ExitPrice.Decimal
		resp.ExitPrice = &p
	}
	return resp
}

func toOptionResponse(t entity.OptionTrade) dto.OptionTradeResponse {
	resp := dto.OptionTradeResponse{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Side:       t.Side,
		OptionType: t.OptionType,
		Strike:     t.Strike,
		Expiration: types.Date{Time: t.Expiration},
		Contracts:  t.Contracts,
		EntryPrice: t.EntryPrice,
		EntryDate:  types.Date{Time: t.EntryDate},
		ExitDate:   toDatePtr(t.ExitDate),
		Fees:       t.Fees,
		Notes:      t.Notes,
		Status:     t.Status,
		PnL:        t.RealizedPnL(),
	}
	if t.ExitPrice.Valid {
		p := t.ExitPrice.Decimal
		resp.ExitPrice = &p
	}
	return resp
}

func stockFromRequest(req dto.StockTradeRequest, userID uint) *entity.StockTrade {
	t := &entity.StockTrade{
		UserID:     userID,
		Symbol:     req.Symbol,
		Side:       req.Side,
		Quantity:   req.Quantity,
		EntryPrice: req.EntryPrice,
		EntryDate:  req.EntryDate.Time,
		Fees:       req.Fees,
		Notes:      req.Notes,
	}
	if req.ExitPrice != nil {
		t.ExitPrice.Decimal = *req.ExitPrice
		t.ExitPrice.Valid = true
	}
	if req.ExitDate != nil {
		d := req.ExitDate.Time
		t.ExitDate = &d
	}
	return t
}

func optionFromRequest(req dto.OptionTradeRequest, userID uint) *entity.OptionTrade {
	t := &entity.OptionTrade{
		UserID:     userID,
		Symbol:     req.Symbol,
		Side:       req.Side,
		OptionType: req.OptionType,
		Strike:     req.Strike,
		Expiration: req.Expiration.Time,
		Contracts:  req.Contracts,
		EntryPrice: req.EntryPrice,
		EntryDate:  req.EntryDate.Time,
		Fees:       req.Fees,
		Notes:      req.Notes,
	}
	if req.ExitPrice != nil {
		t.ExitPrice.Decimal = *req.ExitPrice
		t.ExitPrice.Valid = true
	}
	if req.ExitDate != nil {
		d := req.ExitDate.Time
		t.ExitDate = &d
	}
	return t
}

// writeTradeError はユースケース層のエラーをHTTPステータスへ変換します。
func writeTradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTradeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidTrade),
		errors.Is(err, usecase.ErrMergeTooFew),
		errors.Is(err, usecase.ErrMergeMixedSymbols),
		errors.Is(err, usecase.ErrMergeMixedSides),
		errors.Is(err, usecase.ErrMergeZeroQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// ListStocks は GET /trades を処理します。
func (h *TradeHandler) ListStocks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trades, err := h.usecase.ListStockTrades(c.Request.Context(), userID)
	if err != nil {
		writeTradeError(c, err)
		return
	}
	resp := make([]dto.StockTradeResponse, 0, len(trades))
	for _, t := range trades {
		resp = append(resp, toStockResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateStock は POST /trades を処理します。
func (h *TradeHandler) CreateStock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.StockTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := stockFromRequest(req, userID)
	if err := h.usecase.CreateStockTrade(c.Request.Context(), t); err != nil {
		writeTradeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStockResponse(*t))
}

// UpdateStock は PUT /trades/:id を処理します。
func (h *TradeHandler) UpdateStock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.StockTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := stockFromRequest(req, userID)
	t.ID = id
	if err := h.usecase.UpdateStockTrade(c.Request.Context(), t); err != nil {
		writeTradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockResponse(*t))
}

// DeleteStock は DELETE /trades/:id を処理します。
func (h *TradeHandler) DeleteStock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.usecase.DeleteStockTrade(c.Request.Context(), userID, id); err != nil {
		writeTradeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MergeStocks は POST /trades/merge を処理します。
// 同一銘柄・同一サイドの複数トレードを加重平均で1ポジションへ統合します。
func (h *TradeHandler) MergeStocks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	merged, err := h.usecase.MergeStockTrades(c.Request.Context(), userID, req.TradeIDs)
	if err != nil {
		writeTradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockResponse(*merged))
}

// ListOptions は GET /options を処理します。
func (h *TradeHandler) ListOptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trades, err := h.usecase.ListOptionTrades(c.Request.Context(), userID)
	if err != nil {
		writeTradeError(c, err)
		return
	}
	resp := make([]dto.OptionTradeResponse, 0, len(trades))
	for _, t := range trades {
		resp = append(resp, toOptionResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateOption は POST /options を処理します。
func (h *TradeHandler) CreateOption(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.OptionTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := optionFromRequest(req, userID)
	if err := h.usecase.CreateOptionTrade(c.Request.Context(), t); err != nil {
		writeTradeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOptionResponse(*t))
}

// UpdateOption は PUT /options/:id を処理します。
func (h *TradeHandler) UpdateOption(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.OptionTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := optionFromRequest(req, userID)
	t.ID = id
	if err := h.usecase.UpdateOptionTrade(c.Request.Context(), t); err != nil {
		writeTradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOptionResponse(*t))
}

// DeleteOption は DELETE /options/:id を処理します。
func (h *TradeHandler) DeleteOption(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.usecase.DeleteOptionTrade(c.Request.Context(), userID, id); err != nil {
		writeTradeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
