package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// dateLayout はカレンダー集計のバケットキー（手仕舞い日）のフォーマットです。
const dateLayout = "2006-01-02"

// DayPnL は1日分の実現損益バケットです（カレンダービューのフィード）。
type DayPnL struct {
	Date   string          `json:"date"`
	PnL    decimal.Decimal `json:"pnl"`
	Trades int             `json:"trades"`
}

// AnalyticsSummary はクローズ済みトレード全体のサマリー統計です。
type AnalyticsSummary struct {
	TotalPnL   decimal.Decimal `json:"totalPnl"`
	TradeCount int             `json:"tradeCount"`
	WinCount   int             `json:"winCount"`
	LossCount  int             `json:"lossCount"`
	WinRate    float64         `json:"winRate"` // 0-100 (%)
	AvgWin     decimal.Decimal `json:"avgWin"`
	AvgLoss    decimal.Decimal `json:"avgLoss"`
	BestDay    *DayPnL         `json:"bestDay,omitempty"`
	WorstDay   *DayPnL         `json:"worstDay,omitempty"`
	FirstDate  string          `json:"firstDate,omitempty"`
	LastDate   string          `json:"lastDate,omitempty"`
	Days       []DayPnL        `json:"days"`
}

// AnalyticsUsecase はクローズ済みトレードの集計を提供します。
type AnalyticsUsecase struct {
	trades  TradeRepository
	options OptionRepository
}

// NewAnalyticsUsecase は新しい AnalyticsUsecase を作成します。
func NewAnalyticsUsecase(trades TradeRepository, options OptionRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{trades: trades, options: options}
}

// Summary は株式・オプション両方のクローズ済みトレードを1パスで集計します。
// 未決済トレードは実現損益に含めません。
func (au *AnalyticsUsecase) Summary(ctx context.Context, userID uint) (*AnalyticsSummary, error) {
	stocks, err := au.trades.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	options, err := au.options.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	type closedTrade struct {
		pnl  decimal.Decimal
		date string
	}
	closed := make([]closedTrade, 0, len(stocks)+len(options))
	for _, t := range stocks {
		if t.IsClosed() {
			closed = append(closed, closedTrade{pnl: t.RealizedPnL(), date: t.ExitDate.UTC().Format(dateLayout)})
		}
	}
	for _, t := range options {
		if t.IsClosed() {
			closed = append(closed, closedTrade{pnl: t.RealizedPnL(), date: t.ExitDate.UTC().Format(dateLayout)})
		}
	}

	s := &AnalyticsSummary{Days: []DayPnL{}}
	if len(closed) == 0 {
		return s, nil
	}

	var winSum, lossSum decimal.Decimal
	byDay := make(map[string]*DayPnL)
	for _, ct := range closed {
		s.TradeCount++
		s.TotalPnL = s.TotalPnL.Add(ct.pnl)

		if ct.pnl.IsPositive() {
			s.WinCount++
			winSum = winSum.Add(ct.pnl)
		} else if ct.pnl.IsNegative() {
			s.LossCount++
			lossSum = lossSum.Add(ct.pnl)
		}

		day, ok := byDay[ct.date]
		if !ok {
			day = &DayPnL{Date: ct.date}
			byDay[ct.date] = day
		}
		day.PnL = day.PnL.Add(ct.pnl)
		day.Trades++

		if s.FirstDate == "" || ct.date < s.FirstDate {
			s.FirstDate = ct.date
		}
		if ct.date > s.LastDate {
			s.LastDate = ct.date
		}
	}

	s.WinRate = float64(s.WinCount) / float64(s.TradeCount) * 100
	if s.WinCount > 0 {
		s.AvgWin = winSum.Div(decimal.NewFromInt(int64(s.WinCount)))
	}
	if s.LossCount > 0 {
		s.AvgLoss = lossSum.Div(decimal.NewFromInt(int64(s.LossCount)))
	}

	s.Days = make([]DayPnL, 0, len(byDay))
	for _, d := range byDay {
		s.Days = append(s.Days, *d)
	}
	sort.Slice(s.Days, func(i, j int) bool { return s.Days[i].Date < s.Days[j].Date })

	for i := range s.Days {
		d := s.Days[i]
		if s.BestDay == nil || d.PnL.GreaterThan(s.BestDay.PnL) {
			best := d
			s.BestDay = &best
		}
		if s.WorstDay == nil || d.PnL.LessThan(s.WorstDay.PnL) {
			worst := d
			s.WorstDay = &worst
		}
	}
	return s, nil
}
