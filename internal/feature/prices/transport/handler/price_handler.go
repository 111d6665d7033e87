// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/api"
	"journal_backend/internal/feature/prices/domain/entity"
	"journal_backend/internal/feature/prices/transport/http/dto"
	"journal_backend/internal/feature/prices/usecase"
)

// PricesUsecase は株価読み取りのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PricesUsecase interface {
	GetPrices(ctx context.Context, symbol, rng, interval string, limit int) ([]entity.PriceBar, error)
}

// PriceIngestUsecase は価格取り込みのユースケースインターフェースを定義します。
type PriceIngestUsecase interface {
	IngestAll(ctx context.Context, symbols []string, skipExisting bool) (*usecase.IngestSummary, error)
}

// SymbolSource は取り込み対象の銘柄一覧を提供します。
type SymbolSource interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// PriceHandler は時系列株価のHTTPリクエストを処理します。
type PriceHandler struct {
	prices  PricesUsecase
	ingest  PriceIngestUsecase
	symbols SymbolSource
}

// NewPriceHandler は指定されたusecaseでPriceHandlerの新しいインスタンスを生成します。
func NewPriceHandler(prices PricesUsecase, ingest PriceIngestUsecase, symbols SymbolSource) *PriceHandler {
	return &PriceHandler{prices: prices, ingest: ingest, symbols: symbols}
}

// GetPrices は銘柄コードとレンジ・足を受け取り、バーをJSONで返します。
//
// エンドポイント例:
// GET /prices/AAPL?range=6mo&interval=1d&limit=200
func (h *PriceHandler) GetPrices(c *gin.Context) {
	symbol := c.Param("symbol")
	// 未指定の場合はデフォルト値を使用
	rng := c.DefaultQuery("range", usecase.DefaultRange)
	interval := c.DefaultQuery("interval", usecase.DefaultInterval)
	limitStr := c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultLimit))
	// 文字列を整数に変換
	limit, _ := strconv.Atoi(limitStr)

	bars, err := h.prices.GetPrices(c.Request.Context(), symbol, rng, interval, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	// データをフォーマット
	out := make([]dto.PriceBarResponse, 0, len(bars))
	for _, x := range bars {
		out = append(out, dto.PriceBarResponse{
			Time:   x.Time.UTC().Format("2006-01-02"),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}

	c.JSON(http.StatusOK, out)
}

// Sync は時系列株価の取り込みを実行します。
//
// エンドポイント例:
// POST /prices/sync {"symbols": ["AAPL"], "skipExisting": false}
// ボディ省略時は既知の全銘柄が対象になります。
func (h *PriceHandler) Sync(c *gin.Context) {
	var req dto.IngestRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
			return
		}
	}

	symbols := req.Symbols
	if len(symbols) == 0 {
		var err error
		symbols, err = h.symbols.ListSymbols(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}
	}

	skipExisting := true
	if req.SkipExisting != nil {
		skipExisting = *req.SkipExisting
	}

	summary, err := h.ingest.IngestAll(c.Request.Context(), symbols, skipExisting)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	var res dto.IngestResponse
	res.Success = summary.Errors == 0
	res.Summary.Processed = summary.Processed
	res.Summary.Skipped = summary.Skipped
	res.Summary.Errors = summary.Errors
	res.Summary.Rejected = summary.Rejected
	res.Summary.Upserted = summary.Upserted

	c.JSON(http.StatusOK, res)
}
