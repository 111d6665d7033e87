package usecase

import (
	"strings"

	"journal_backend/internal/feature/companyinfo/domain/entity"
)

// providerResult は1プロバイダのフェッチ結果です。失敗したプロバイダは
// err を保持したままマージ対象から外れます。
type providerResult struct {
	name string
	info *entity.CompanyInfo
	err  error
}

// combine は複数プロバイダの結果を1つのCompanyInfoにマージします。
// フィールドごとに「最初に空でない値」を採用し、providers の並び順が
// そのまま優先順位になります。DataSource にはデータを返したプロバイダ名を
// ", " 区切りで列挙します。全プロバイダが空の場合は nil を返します。
func combine(symbol string, results []providerResult) *entity.CompanyInfo {
	merged := entity.CompanyInfo{Symbol: symbol}
	var sources []string

	for _, r := range results {
		if r.err != nil || r.info == nil {
			continue
		}
		mergeInfo(&merged, *r.info)
		sources = append(sources, r.name)
	}

	if len(sources) == 0 || merged.IsEmpty() {
		return nil
	}
	merged.DataSource = strings.Join(sources, ", ")
	return &merged
}

// mergeInfo は dst の空フィールドにのみ src の値を書き込みます。
func mergeInfo(dst *entity.CompanyInfo, src entity.CompanyInfo) {
	dst.Name = firstNonEmpty(dst.Name, src.Name)
	dst.Exchange = firstNonEmpty(dst.Exchange, src.Exchange)
	dst.Sector = firstNonEmpty(dst.Sector, src.Sector)
	dst.Industry = firstNonEmpty(dst.Industry, src.Industry)
	dst.Country = firstNonEmpty(dst.Country, src.Country)
	dst.Currency = firstNonEmpty(dst.Currency, src.Currency)
	dst.WebsiteURL = firstNonEmpty(dst.WebsiteURL, src.WebsiteURL)
	dst.LogoURL = firstNonEmpty(dst.LogoURL, src.LogoURL)
	dst.Description = firstNonEmpty(dst.Description, src.Description)
	dst.CEO = firstNonEmpty(dst.CEO, src.CEO)
	dst.IPODate = firstNonEmpty(dst.IPODate, src.IPODate)
	if dst.Employees == 0 {
		dst.Employees = src.Employees
	}
	if dst.MarketCap == 0 {
		dst.MarketCap = src.MarketCap
	}
}

func firstNonEmpty(cur, next string) string {
	if cur != "" {
		return cur
	}
	return strings.TrimSpace(next)
}
