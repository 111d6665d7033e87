package cache

import (
	"time"
)

// TimeUntilNextMarketOpen は次の米国市場オープン（東部時間9:30）までの期間を返します。
// 日足以上のバーはオープンまで変化しないため、キャッシュTTLとして使います。
func TimeUntilNextMarketOpen() time.Duration {
	loc, _ := time.LoadLocation("America/New_York")
	now := time.Now().In(loc)

	// 次のオープン時刻を計算
	next := time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, loc)

	// 今日のオープンが既に過ぎている場合は翌日のオープンを使用
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
