// Package handler はcompanyinfoフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/api"
	"journal_backend/internal/feature/companyinfo/adapters"
	"journal_backend/internal/feature/companyinfo/domain/entity"
	"journal_backend/internal/feature/companyinfo/transport/http/dto"
	"journal_backend/internal/feature/companyinfo/usecase"
)

// SyncUsecase は企業情報同期のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SyncUsecase interface {
	Sync(ctx context.Context, opts usecase.SyncOptions) (*usecase.SyncSummary, error)
	GetCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error)
}

// CompanyHandler は企業情報のHTTPリクエストを処理します。
type CompanyHandler struct {
	uc SyncUsecase
}

// NewCompanyHandler は指定されたusecaseでCompanyHandlerの新しいインスタンスを生成します。
func NewCompanyHandler(uc SyncUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Sync は企業情報の同期を実行します。
//
// エンドポイント例:
// POST /company-info/sync {"symbols": ["AAPL"], "skipExisting": true, "maxSymbols": 50}
// ボディは省略可能で、その場合は既知の全銘柄が対象になります。
func (h *CompanyHandler) Sync(c *gin.Context) {
	var req dto.SyncRequest
	// ボディなしのPOSTも許容する
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
			return
		}
	}

	skipExisting := true
	if req.SkipExisting != nil {
		skipExisting = *req.SkipExisting
	}

	summary, err := h.uc.Sync(c.Request.Context(), usecase.SyncOptions{
		Symbols:      req.Symbols,
		SkipExisting: skipExisting,
		MaxSymbols:   req.MaxSymbols,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	results := make([]dto.SyncResult, 0, len(summary.Results))
	for _, r := range summary.Results {
		results = append(results, dto.SyncResult{
			Symbol:     r.Symbol,
			Status:     r.Status,
			DataSource: r.DataSource,
			Error:      r.Error,
		})
	}

	c.JSON(http.StatusOK, dto.SyncResponse{
		Success: summary.Errors == 0,
		Summary: dto.SyncSummary{
			Processed:  summary.Processed,
			Successful: summary.Successful,
			Errors:     summary.Errors,
		},
		Results: results,
	})
}

// Get は保存済みの企業情報を1件返します。
//
// エンドポイント例:
// GET /company-info/AAPL
func (h *CompanyHandler) Get(c *gin.Context) {
	symbol := c.Param("symbol")

	info, err := h.uc.GetCompanyInfo(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, adapters.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company info not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CompanyResponse{
		Symbol:      info.Symbol,
		Name:        info.Name,
		Exchange:    info.Exchange,
		Sector:      info.Sector,
		Industry:    info.Industry,
		Country:     info.Country,
		Currency:    info.Currency,
		WebsiteURL:  info.WebsiteURL,
		LogoURL:     info.LogoURL,
		Description: info.Description,
		CEO:         info.CEO,
		Employees:   info.Employees,
		MarketCap:   info.MarketCap,
		IPODate:     info.IPODate,
		DataSource:  info.DataSource,
		UpdatedAt:   info.UpdatedAt.UTC().Format(time.RFC3339),
	})
}
