package usecase

import (
	"strings"
	"time"
)

// supportedPeriods は GetSeriesForPeriod が受け付ける期間です。
var supportedPeriods = []string{"3M", "1Y", "2Y", "3Y", "5Y"}

// periodMonths は期間トークンを遡る月数に変換します。
var periodMonths = map[string]int{
	"3M": 3,
	"1Y": 12,
	"2Y": 24,
	"3Y": 36,
	"5Y": 60,
}

// defaultPeriodMonths は未知の期間トークンに対する遡り月数です。
const defaultPeriodMonths = 1

// PeriodStart は today から period 分遡った開始日を返します。
// period は大文字小文字を区別せず、未知の値は1ヶ月として扱います。
func PeriodStart(today time.Time, period string) time.Time {
	months, ok := periodMonths[strings.ToUpper(strings.TrimSpace(period))]
	if !ok {
		months = defaultPeriodMonths
	}
	return minusMonths(today, months)
}

// minusMonths は暦の上で n ヶ月前の日付を返します。
// 該当日が存在しない場合は月末に丸めます（例: 5/31 の3ヶ月前は 2/28 または 2/29）。
func minusMonths(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
