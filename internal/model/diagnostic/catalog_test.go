package diagnostic_test

import (
	"testing"

	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
)

func TestCatalogOrderAndBounds(t *testing.T) {
	catalog := diagnostic.NewCatalog(diagnostic.Seed())

	if catalog.Size() != 3 {
		t.Fatalf("expected 3 questions, got %d", catalog.Size())
	}

	wantIDs := []string{"q1_icp", "q2_problem", "q3_validation"}
	for i, want := range wantIDs {
		q, ok := catalog.At(i + 1)
		if !ok {
			t.Fatalf("missing question %d", i+1)
		}
		if q.ID != want {
			t.Fatalf("question %d: expected id %s, got %s", i+1, want, q.ID)
		}
		if len(q.Options) == 0 {
			t.Fatalf("question %s has no options", q.ID)
		}
	}

	if _, ok := catalog.At(0); ok {
		t.Fatal("At(0) should be out of bounds")
	}
	if _, ok := catalog.At(4); ok {
		t.Fatal("At(4) should be out of bounds")
	}
}

func TestAnswerRankResolution(t *testing.T) {
	catalog := diagnostic.NewCatalog(diagnostic.Seed())
	q, _ := catalog.At(1)

	matched := diagnostic.NewAnswer(q, q.Options[2])
	if !matched.Matched() || matched.Rank != 2 {
		t.Fatalf("expected matched rank 2, got %+v", matched)
	}

	free := diagnostic.NewAnswer(q, "we sell to literally everyone")
	if free.Matched() {
		t.Fatalf("free text should not match: %+v", free)
	}
	if free.Raw != "we sell to literally everyone" {
		t.Fatalf("free text answer lost its raw value: %+v", free)
	}
}
