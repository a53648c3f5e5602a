package usecase

import (
	"testing"

	"github.com/eslsoft/vocnote/pkg/filterexpr"
)

func TestWordFiltersCoverSchema(t *testing.T) {
	for name, field := range WordQuerySchema.Fields {
		for _, op := range field.Ops {
			if _, ok := wordFilters[filterKey{name, op}]; !ok {
				t.Errorf("filter %s %s has no word predicate", name, op)
			}
		}
	}
	if _, err := compileWordFilter([]filterexpr.Condition{{Field: "meaning", Op: filterexpr.OpEQ}}); err == nil {
		t.Fatal("expected an error for a field without predicate")
	}
}
