package usecase

import (
	"fmt"
	"strings"
	"time"

	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
)

const (
	dayFormLen   = len("yyyy-mm-dd")
	monthFormLen = len("yyyy-mm")
)

// NormalizeDateRange は文字列で与えられた開始日・終了日を検証し、DateRangeに変換します。
//
// 各引数は yyyy-mm-dd または yyyy-mm 形式を受け付けます。月形式の場合、開始日は月初、
// 終了日は月末に展開されます。終了日が today より未来の場合は today に丸められます。
// 入力が不正な場合は domain パッケージの型付きエラーを返します。
func NormalizeDateRange(start, end string, today time.Time) (entity.DateRange, error) {
	today = entity.Day(today)

	s, err := parseBound(start, false)
	if err != nil {
		return entity.DateRange{}, err
	}
	e, err := parseBound(end, true)
	if err != nil {
		return entity.DateRange{}, err
	}

	if s.After(today) {
		return entity.DateRange{}, fmt.Errorf("%w: %s", domain.ErrStartInFuture, s.Format(entity.DateLayout))
	}

	r := entity.DateRange{Start: s, End: e}.ClampEnd(today)
	if r.Start.After(r.End) {
		return entity.DateRange{}, fmt.Errorf("%w: %s", domain.ErrStartAfterEnd, r)
	}
	return r, nil
}

// parseBound parses one end of the range. Month-form values expand to the first
// day of the month, or to the last day when isEnd is set.
func parseBound(v string, isEnd bool) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch len(v) {
	case dayFormLen:
		t, err := time.Parse(entity.DateLayout, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, v)
		}
		return t, nil
	case monthFormLen:
		t, err := time.Parse(entity.MonthLayout, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, v)
		}
		if isEnd {
			return entity.LastOfMonth(t), nil
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, v)
	}
}
