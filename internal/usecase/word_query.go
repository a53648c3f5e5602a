package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/repository"
	"github.com/eslsoft/vocnote/pkg/filterexpr"
)

// Order keys accepted by Query.
const (
	OrderPosition    = "position"
	OrderID          = "id"
	OrderWord        = "word"
	OrderMastery     = "mastery"
	OrderReviewCount = "review_count"
	OrderCreatedAt   = "created_at"
	OrderUpdatedAt   = "updated_at"
	OrderNextReview  = "next_review"
)

// WordQuerySchema whitelists the filter and order_by fields of Query.
var WordQuerySchema = filterexpr.Schema{
	Fields: map[string]filterexpr.Field{
		"keyword":     {Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ}},
		"tag":         {Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN}},
		"word":        {Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpSW}},
		"mastery":     {Kind: filterexpr.KindNumber, Ops: []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE}},
		"next_review": {Kind: filterexpr.KindTimestamp, Ops: []filterexpr.Op{filterexpr.OpLTE}},
		"created_at":  {Kind: filterexpr.KindTimestamp, Ops: []filterexpr.Op{filterexpr.OpGTE}},
	},
	Order: filterexpr.OrderSchema{
		DefaultKey:  OrderPosition,
		FallbackKey: OrderID,
		Fields: map[string]filterexpr.OrderField{
			OrderPosition:    {},
			OrderID:          {},
			OrderWord:        {},
			OrderMastery:     {},
			OrderReviewCount: {},
			OrderCreatedAt:   {},
			OrderUpdatedAt:   {},
			// never reviewed means due now
			OrderNextReview: {NullsFirst: true},
		},
	},
}

type wordPredicate func(entity.WordEntry) bool

type filterKey struct {
	field string
	op    filterexpr.Op
}

// wordFilters evaluates each whitelisted field and operator pair against an entry.
var wordFilters = map[filterKey]func(v filterexpr.Literal) wordPredicate{
	{"keyword", filterexpr.OpEQ}: func(v filterexpr.Literal) wordPredicate {
		return func(w entity.WordEntry) bool { return matchesKeyword(w, v.String) }
	},
	{"tag", filterexpr.OpEQ}: func(v filterexpr.Literal) wordPredicate {
		return func(w entity.WordEntry) bool { return w.HasTag(v.String) }
	},
	{"tag", filterexpr.OpIN}: func(v filterexpr.Literal) wordPredicate {
		return func(w entity.WordEntry) bool { return lo.SomeBy(v.List, w.HasTag) }
	},
	{"word", filterexpr.OpSW}: func(v filterexpr.Literal) wordPredicate {
		prefix := strings.ToLower(v.String)
		return func(w entity.WordEntry) bool { return strings.HasPrefix(strings.ToLower(w.Word), prefix) }
	},
	{"mastery", filterexpr.OpGTE}: func(v filterexpr.Literal) wordPredicate {
		return func(w entity.WordEntry) bool { return float64(w.Mastery) >= v.Number }
	},
	{"mastery", filterexpr.OpLTE}: func(v filterexpr.Literal) wordPredicate {
		return func(w entity.WordEntry) bool { return float64(w.Mastery) <= v.Number }
	},
	{"next_review", filterexpr.OpLTE}: func(v filterexpr.Literal) wordPredicate {
		return func(w entity.WordEntry) bool { return w.IsDue(v.Time) }
	},
	{"created_at", filterexpr.OpGTE}: func(v filterexpr.Literal) wordPredicate {
		return func(w entity.WordEntry) bool { return !w.CreatedAt.Before(v.Time) }
	},
}

func compileWordFilter(conds []filterexpr.Condition) (wordPredicate, error) {
	preds := make([]wordPredicate, 0, len(conds))
	for _, c := range conds {
		build, ok := wordFilters[filterKey{c.Field, c.Op}]
		if !ok {
			return nil, fmt.Errorf("no word filter for %s %s", c.Field, c.Op)
		}
		preds = append(preds, build(c.Value))
	}
	return func(w entity.WordEntry) bool {
		return lo.EveryBy(preds, func(p wordPredicate) bool { return p(w) })
	}, nil
}

type positionedWord struct {
	pos   int
	entry entity.WordEntry
}

// Query filters and orders the collection with a filter expression such as
// `tag == "noun" && mastery >= 80` and an order_by clause such as `mastery desc`.
// It returns the requested page and the number of matching entries.
func (u *vocabularyUsecase) Query(ctx context.Context, query *repository.ListWordQuery) ([]entity.WordEntry, int, error) {
	if query == nil {
		query = &repository.ListWordQuery{}
	}
	compiled, err := filterexpr.Compile(&query.FilterOrder, WordQuerySchema)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}
	match, err := compileWordFilter(compiled.Conditions)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	u.mu.RLock()
	matched := make([]positionedWord, 0, len(u.words))
	for i, w := range u.words {
		if match(w) {
			matched = append(matched, positionedWord{pos: i, entry: w.Clone()})
		}
	}
	u.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b positionedWord) int {
		for _, key := range compiled.Order.Keys {
			if c := compareByKey(a, b, key); c != 0 {
				return c
			}
		}
		return 0
	})

	start, end := query.Window(len(matched))
	page := lo.Map(matched[start:end], func(p positionedWord, _ int) entity.WordEntry { return p.entry })
	return page, len(matched), nil
}

func compareByKey(a, b positionedWord, key filterexpr.OrderKey) int {
	if key.Field == OrderNextReview {
		an, bn := a.entry.NextReview == nil, b.entry.NextReview == nil
		switch {
		case an && bn:
			return 0
		case an != bn:
			if an == key.NullsFirst {
				return -1
			}
			return 1
		}
	}

	var c int
	switch key.Field {
	case OrderPosition:
		c = cmp.Compare(a.pos, b.pos)
	case OrderID:
		c = strings.Compare(a.entry.ID, b.entry.ID)
	case OrderWord:
		c = strings.Compare(strings.ToLower(a.entry.Word), strings.ToLower(b.entry.Word))
	case OrderMastery:
		c = cmp.Compare(a.entry.Mastery, b.entry.Mastery)
	case OrderReviewCount:
		c = cmp.Compare(a.entry.ReviewCount, b.entry.ReviewCount)
	case OrderCreatedAt:
		c = a.entry.CreatedAt.Compare(b.entry.CreatedAt)
	case OrderUpdatedAt:
		c = a.entry.UpdatedAt.Compare(b.entry.UpdatedAt)
	case OrderNextReview:
		c = a.entry.NextReview.Compare(*b.entry.NextReview)
	}
	if key.Desc {
		return -c
	}
	return c
}
