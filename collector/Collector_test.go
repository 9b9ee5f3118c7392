package collector

import (
	"testing"

	"github.com/AGKhalil/bast/rollout"
)

// testExperience returns a single-transition episode whose field
// values are derived from id, so episodes can be told apart
func testExperience(id int) rollout.Experience {
	return rollout.Experience{
		States:     [][]float64{{float64(id)}},
		Actions:    []int{id},
		Rewards:    []float64{float64(id)},
		Dones:      []bool{true},
		NextStates: [][]float64{{float64(id + 1)}},
	}
}

func TestNewInvalidCapacity(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("expected error for capacity 0")
	}
	if _, err := New(-1); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestAppendNeverExceedsCapacity(t *testing.T) {
	c, err := New(3)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 10; i++ {
		c.Append(testExperience(i))
		if c.Len() > c.Capacity() {
			t.Fatalf("length %v exceeds capacity %v", c.Len(), c.Capacity())
		}
	}
	if c.Len() != 3 {
		t.Errorf("length \n\twant(%v)\n\thave(%v)", 3, c.Len())
	}
}

func TestAppendEvictsOldest(t *testing.T) {
	c, err := New(3)
	if err != nil {
		t.Fatal(err)
	}

	// Append e1..e5: the collector should hold [e3, e4, e5]
	for i := 1; i <= 5; i++ {
		c.Append(testExperience(i))
	}

	batch, err := c.Sample()
	if err != nil {
		t.Fatal(err)
	}
	if batch.Len() != 3 {
		t.Fatalf("batch length \n\twant(%v)\n\thave(%v)", 3, batch.Len())
	}

	for i, want := range []int{3, 4, 5} {
		if batch.Actions[i][0] != want {
			t.Errorf("episode %v action \n\twant(%v)\n\thave(%v)", i, want,
				batch.Actions[i][0])
		}
		if batch.States[i][0][0] != float64(want) {
			t.Errorf("episode %v state \n\twant(%v)\n\thave(%v)", i,
				float64(want), batch.States[i][0][0])
		}
		if batch.Rewards[i][0] != float32(want) {
			t.Errorf("episode %v reward \n\twant(%v)\n\thave(%v)", i,
				float32(want), batch.Rewards[i][0])
		}
		if batch.NextStates[i][0][0] != float64(want+1) {
			t.Errorf("episode %v next state \n\twant(%v)\n\thave(%v)", i,
				float64(want+1), batch.NextStates[i][0][0])
		}
	}
}

func TestSampleInsertionOrder(t *testing.T) {
	c, err := New(5)
	if err != nil {
		t.Fatal(err)
	}

	// Partially filled: sample should return k episodes oldest first
	for i := 1; i <= 3; i++ {
		c.Append(testExperience(i))
	}

	batch, err := c.Sample()
	if err != nil {
		t.Fatal(err)
	}
	if batch.Len() != 3 {
		t.Fatalf("batch length \n\twant(%v)\n\thave(%v)", 3, batch.Len())
	}
	for i := 0; i < batch.Len(); i++ {
		if batch.Actions[i][0] != i+1 {
			t.Errorf("episode %v out of order: action %v", i,
				batch.Actions[i][0])
		}
	}
}

func TestSampleParallelFieldLengths(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 2; i++ {
		c.Append(testExperience(i))
	}

	batch, err := c.Sample()
	if err != nil {
		t.Fatal(err)
	}

	lengths := []int{len(batch.States), len(batch.Actions),
		len(batch.Rewards), len(batch.Dones), len(batch.NextStates)}
	for _, length := range lengths {
		if length != 2 {
			t.Errorf("parallel array length \n\twant(%v)\n\thave(%v)", 2,
				length)
		}
	}
}

func TestSampleEmptyBuffer(t *testing.T) {
	c, err := New(3)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Sample()
	if err == nil {
		t.Fatal("expected error sampling empty collector")
	}
	if !IsEmptyBuffer(err) {
		t.Errorf("IsEmptyBuffer should report true for %v", err)
	}
}

func TestEmptyBuffer(t *testing.T) {
	c, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		c.Append(testExperience(i))
	}

	c.EmptyBuffer()
	if c.Len() != 0 {
		t.Errorf("length after EmptyBuffer \n\twant(%v)\n\thave(%v)", 0,
			c.Len())
	}
	if _, err := c.Sample(); !IsEmptyBuffer(err) {
		t.Error("emptied collector should report an empty buffer on Sample")
	}

	// The collector remains usable after being emptied
	c.Append(testExperience(6))
	batch, err := c.Sample()
	if err != nil {
		t.Fatal(err)
	}
	if batch.Len() != 1 || batch.Actions[0][0] != 6 {
		t.Error("collector unusable after EmptyBuffer")
	}
}
