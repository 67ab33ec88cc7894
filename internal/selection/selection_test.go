package selection

import (
	"fmt"
	"math/rand"
	"testing"

	"quiz-extensions/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []domain.Item {
	out := make([]domain.Item, n)
	for i := range out {
		out[i] = domain.Item{ID: fmt.Sprintf("%d", 100+i), Label: fmt.Sprintf("Student, %d", i)}
	}
	return out
}

func placeholders(s *Set) int {
	n := 0
	for _, e := range s.Available() {
		if e.Placeholder {
			n++
		}
	}
	return n
}

// assertInvariants checks no duplicate Chosen ids and that every Available
// entry is disabled exactly when its id is Chosen.
func assertInvariants(t *testing.T, s *Set) {
	t.Helper()
	seen := map[string]bool{}
	for _, id := range s.ChosenIDs() {
		require.False(t, seen[id], "duplicate chosen id %s", id)
		seen[id] = true
	}
	for _, e := range s.Available() {
		if e.Placeholder {
			continue
		}
		assert.Equal(t, seen[e.Item.ID], e.Disabled, "disabled flag of %s", e.Item.ID)
	}
	assert.LessOrEqual(t, placeholders(s), 1)
	assert.Equal(t, s.Exhausted(), placeholders(s) == 1)
}

func TestSet_ChooseIsIdempotent(t *testing.T) {
	s := New(nil)
	pool := items(3)
	s.LoadAvailable(pool)

	assert.True(t, s.Choose(pool[0]))
	assert.False(t, s.Choose(pool[0]))
	assert.Equal(t, []string{"100"}, s.ChosenIDs())
	assertInvariants(t, s)
}

func TestSet_RecallUnknownIsNoop(t *testing.T) {
	calls := 0
	s := New(func(string, domain.Item) { calls++ })
	s.LoadAvailable(items(2))

	assert.False(t, s.Recall("nope"))
	assert.Equal(t, 0, calls)
	assertInvariants(t, s)
}

func TestSet_InsertionOrderIsDisplayOrder(t *testing.T) {
	s := New(nil)
	pool := items(4)
	s.LoadAvailable(pool)
	s.Choose(pool[2])
	s.Choose(pool[0])
	s.Choose(pool[3])
	s.Recall(pool[0].ID)

	assert.Equal(t, []string{"102", "103"}, s.ChosenIDs())
}

func TestSet_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := items(6)
	s := New(nil)
	s.LoadAvailable(pool)

	for i := 0; i < 500; i++ {
		it := pool[rng.Intn(len(pool))]
		switch rng.Intn(3) {
		case 0, 1:
			s.Choose(it)
		default:
			s.Recall(it.ID)
		}
		assertInvariants(t, s)
	}
}

func TestSet_Clear(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("size %d", n), func(t *testing.T) {
			var recalled []string
			s := New(func(op string, it domain.Item) {
				if op == "recall" {
					recalled = append(recalled, it.ID)
				}
			})
			pool := items(5)
			s.LoadAvailable(pool)
			for _, it := range pool[:n] {
				s.Choose(it)
			}

			assert.Equal(t, n, s.Clear())
			assert.True(t, s.IsEmpty())
			assert.Len(t, recalled, n, "one recall side effect per element")
			for _, e := range s.Available() {
				if !e.Placeholder {
					assert.False(t, e.Disabled)
				}
			}
			assertInvariants(t, s)
		})
	}
}

func TestSet_ExhaustedPlaceholder(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Exhausted())
	assert.Equal(t, 1, placeholders(s))

	pool := items(2)
	s.LoadAvailable(pool)
	assert.Equal(t, 0, placeholders(s))

	s.Choose(pool[0])
	s.Choose(pool[1])
	assert.Equal(t, 1, placeholders(s))
	assert.Equal(t, ExhaustedMessage, s.Available()[2].Message)

	// repeated checks never stack placeholders
	s.checkExhausted()
	s.checkExhausted()
	assert.Equal(t, 1, placeholders(s))

	s.Recall(pool[1].ID)
	assert.Equal(t, 0, placeholders(s))
	assertInvariants(t, s)
}

func TestSet_LoadAvailableKeepsChosenDisabled(t *testing.T) {
	s := New(nil)
	first := items(3)
	s.LoadAvailable(first)
	s.Choose(first[1])

	// the next page still contains the chosen student
	s.LoadAvailable([]domain.Item{first[1], {ID: "900", Label: "Other"}})
	avail := s.Available()
	require.Len(t, avail, 2)
	assert.True(t, avail[0].Disabled)
	assert.False(t, avail[1].Disabled)

	// recall of a student no longer on the page only touches Chosen
	s.LoadAvailable([]domain.Item{{ID: "900", Label: "Other"}})
	assert.True(t, s.Recall(first[1].ID))
	assert.True(t, s.IsEmpty())
	assertInvariants(t, s)
}
