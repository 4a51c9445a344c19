package usecase

import (
	"github.com/shopspring/decimal"

	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
)

// pricePlaces は価格を丸める小数点以下の桁数です。
const pricePlaces = 2

// AverageByMonth は期間に含まれる各月の終値平均を計算します。
//
// 月は r.Start の月初から r.End の月末まで昇順に列挙されます。各月の平均は OpenTime がその月に
// 含まれるレコードの終値の算術平均を小数点以下2桁に丸めた値です。レコードが1件もない月は
// HasData=false になります。
func AverageByMonth(records []entity.PriceRecord, r entity.DateRange) entity.MonthlyAverage {
	type bucket struct {
		sum   decimal.Decimal
		count int64
	}
	buckets := make(map[string]*bucket)
	for _, rec := range records {
		key := rec.OpenTime.UTC().Format(entity.MonthLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum = b.sum.Add(rec.Close)
		b.count++
	}

	span := r.MonthSpan()
	out := make(entity.MonthlyAverage, 0)
	for m := span.Start; !m.After(span.End); m = m.AddDate(0, 1, 0) {
		key := m.Format(entity.MonthLayout)
		b, ok := buckets[key]
		if !ok || b.count == 0 {
			out = append(out, entity.MonthAverage{Month: key})
			continue
		}
		avg := b.sum.Div(decimal.NewFromInt(b.count)).Round(pricePlaces)
		out = append(out, entity.MonthAverage{Month: key, Average: avg, HasData: true})
	}
	return out
}

// LongestNonDecreasingRun は終値が連続して下落しなかった最長の区間を探します。
//
// 終値は比較前に小数点以下2桁に丸められます。同じ長さの区間が複数ある場合は最初に現れた区間を返します。
// レコードが空の場合は domain.ErrNoData を返します。
func LongestNonDecreasingRun(records []entity.PriceRecord) (entity.IncreaseRun, error) {
	if len(records) == 0 {
		return entity.IncreaseRun{}, domain.ErrNoData
	}

	prices := make([]decimal.Decimal, len(records))
	for i, rec := range records {
		prices[i] = rec.RoundedClose()
	}

	type candidate struct{ end, length int }
	candidates := make([]candidate, 0)
	length := 1
	for i := 0; i+1 < len(prices); i++ {
		if prices[i].LessThanOrEqual(prices[i+1]) {
			length++
			continue
		}
		candidates = append(candidates, candidate{end: i, length: length})
		length = 1
	}
	candidates = append(candidates, candidate{end: len(prices) - 1, length: length})

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.length > best.length {
			best = c
		}
	}

	start := best.end - best.length + 1
	return entity.IncreaseRun{
		StartIndex: start,
		EndIndex:   best.end,
		Length:     best.length,
		StartDate:  entity.Day(records[start].CloseTime),
		EndDate:    entity.Day(records[best.end].CloseTime),
		PriceDelta: prices[best.end].Sub(prices[start]).Round(pricePlaces),
	}, nil
}
