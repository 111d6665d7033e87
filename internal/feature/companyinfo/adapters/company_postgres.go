// Package adapters はcompanyinfoフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_backend/internal/feature/companyinfo/domain/entity"
	"journal_backend/internal/feature/companyinfo/usecase"
)

// Column size limits mirrored from the company_info table definition.
// Values from providers are clamped before the upsert, never rejected.
const (
	maxNameLen        = 255
	maxExchangeLen    = 100
	maxSectorLen      = 100
	maxIndustryLen    = 150
	maxCountryLen     = 100
	maxCurrencyLen    = 10
	maxURLLen         = 500
	maxDescriptionLen = 5000
	maxCEOLen         = 255
	maxDataSourceLen  = 255
	marketCapScale    = 4 // numeric(20,4)
)

// ErrCompanyNotFound is returned when no record exists for a symbol.
var ErrCompanyNotFound = errors.New("company info not found")

// companyPostgres はCompanyRepositoryインターフェースのPostgres実装です。
type companyPostgres struct {
	db *gorm.DB
}

var _ usecase.CompanyRepository = (*companyPostgres)(nil)

// NewCompanyRepository は指定されたDB接続でcompanyPostgresの新しいインスタンスを生成します。
func NewCompanyRepository(db *gorm.DB) *companyPostgres {
	return &companyPostgres{db: db}
}

// CompanyModel is the GORM model backing the company_info table.
type CompanyModel struct {
	ID          uint      `gorm:"primaryKey"`
	Symbol      string    `gorm:"size:20;not null;uniqueIndex"`
	Name        string    `gorm:"size:255"`
	Exchange    string    `gorm:"size:100"`
	Sector      string    `gorm:"size:100"`
	Industry    string    `gorm:"size:150"`
	Country     string    `gorm:"size:100"`
	Currency    string    `gorm:"size:10"`
	WebsiteURL  string    `gorm:"size:500"`
	LogoURL     string    `gorm:"size:500"`
	Description string    `gorm:"size:5000"`
	CEO         string    `gorm:"size:255"`
	Employees   int64     `gorm:"not null;default:0"`
	MarketCap   float64   `gorm:"type:numeric(20,4);not null;default:0"`
	IPODate     string    `gorm:"column:ipo_date;size:10"`
	DataSource  string    `gorm:"size:255"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (CompanyModel) TableName() string {
	return "company_info"
}

// toModel は永続化前の型強制（文字列長クランプ・小数精度クランプ）を行います。
func toModel(e entity.CompanyInfo) CompanyModel {
	return CompanyModel{
		Symbol:      clampString(e.Symbol, 20),
		Name:        clampString(e.Name, maxNameLen),
		Exchange:    clampString(e.Exchange, maxExchangeLen),
		Sector:      clampString(e.Sector, maxSectorLen),
		Industry:    clampString(e.Industry, maxIndustryLen),
		Country:     clampString(e.Country, maxCountryLen),
		Currency:    clampString(e.Currency, maxCurrencyLen),
		WebsiteURL:  clampString(e.WebsiteURL, maxURLLen),
		LogoURL:     clampString(e.LogoURL, maxURLLen),
		Description: clampString(e.Description, maxDescriptionLen),
		CEO:         clampString(e.CEO, maxCEOLen),
		Employees:   e.Employees,
		MarketCap:   clampDecimal(e.MarketCap, marketCapScale),
		IPODate:     clampString(e.IPODate, 10),
		DataSource:  clampString(e.DataSource, maxDataSourceLen),
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntity(m CompanyModel) entity.CompanyInfo {
	return entity.CompanyInfo{
		Symbol:      m.Symbol,
		Name:        m.Name,
		Exchange:    m.Exchange,
		Sector:      m.Sector,
		Industry:    m.Industry,
		Country:     m.Country,
		Currency:    m.Currency,
		WebsiteURL:  m.WebsiteURL,
		LogoURL:     m.LogoURL,
		Description: m.Description,
		CEO:         m.CEO,
		Employees:   m.Employees,
		MarketCap:   m.MarketCap,
		IPODate:     m.IPODate,
		DataSource:  m.DataSource,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Upsert は symbol をキーに挿入または更新します。
func (r *companyPostgres) Upsert(ctx context.Context, info entity.CompanyInfo) error {
	m := toModel(info)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "exchange", "sector", "industry", "country", "currency",
			"website_url", "logo_url", "description", "ceo", "employees",
			"market_cap", "ipo_date", "data_source", "updated_at",
		}),
	}).Create(&m).Error
}

// ListSymbols は企業情報が保存済みの銘柄コードを返します。
func (r *companyPostgres) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&CompanyModel{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// FindBySymbol は銘柄1件の企業情報を返します。
func (r *companyPostgres) FindBySymbol(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	var m CompanyModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// clampString はカラム幅を超える文字列を rune 境界で切り詰めます。
func clampString(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// clampDecimal は小数部を指定桁数に丸めます（numericカラムの精度に合わせる）。
func clampDecimal(v float64, scale int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(scale).Float64()
	return f
}
