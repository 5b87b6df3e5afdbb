package state

import (
	"sync"
	"testing"
)

type counterData struct {
	Count   int
	History []string
}

func TestReadWriteModify(t *testing.T) {
	entry := New[counterData]()

	if got := entry.Read(); got.Count != 0 {
		t.Fatalf("expected zero value, got %+v", got)
	}

	entry.Write(counterData{Count: 5})
	if got := entry.Read(); got.Count != 5 {
		t.Fatalf("expected 5, got %d", got.Count)
	}

	entry.Modify(func(data *counterData) {
		data.Count++
		data.History = append(data.History, "inc")
	})
	got := entry.Read()
	if got.Count != 6 || len(got.History) != 1 {
		t.Fatalf("unexpected value after modify: %+v", got)
	}
}

func TestReadReturnsCopy(t *testing.T) {
	entry := New[counterData]()
	entry.Write(counterData{Count: 1})

	snapshot := entry.Read()
	snapshot.Count = 99

	if got := entry.Read(); got.Count != 1 {
		t.Fatalf("mutating a snapshot must not affect the entry, got %d", got.Count)
	}
}

func TestObserversReceiveCommittedValuesInOrder(t *testing.T) {
	entry := New[int]()

	var first, second []int
	entry.Observe(func(v int) { first = append(first, v) })
	entry.Observe(func(v int) { second = append(second, v) })

	entry.Write(10)
	entry.Write(20)
	entry.Modify(func(v *int) { *v = 30 })

	want := []int{10, 20, 30}
	for name, got := range map[string][]int{"first": first, "second": second} {
		if len(got) != len(want) {
			t.Fatalf("%s observer: expected %v, got %v", name, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s observer: expected %v, got %v", name, want, got)
			}
		}
	}
}

func TestObserverRegistrationOrder(t *testing.T) {
	entry := New[int]()

	var order []string
	entry.Observe(func(int) { order = append(order, "a") })
	entry.Observe(func(int) { order = append(order, "b") })

	entry.Write(1)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected registration order a,b, got %v", order)
	}
}

func TestObserverMayReenterEntry(t *testing.T) {
	entry := New[int]()

	var seen int
	entry.Observe(func(v int) {
		// Observers run outside the lock, so reading back must not deadlock.
		seen = entry.Read()
		_ = v
	})

	entry.Write(7)
	if seen != 7 {
		t.Fatalf("expected re-entrant read to see 7, got %d", seen)
	}
}

func TestConcurrentModifyLosesNoUpdates(t *testing.T) {
	entry := New[counterData]()

	const goroutines = 10
	const increments = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < increments; i++ {
				entry.Modify(func(data *counterData) {
					data.Count++
				})
			}
		}()
	}
	wg.Wait()

	if got := entry.Read().Count; got != goroutines*increments {
		t.Fatalf("expected %d increments, got %d", goroutines*increments, got)
	}
}

func TestAccessGroupsMutationsIntoOneNotification(t *testing.T) {
	entry := New[counterData]()

	var notifications []counterData
	entry.Observe(func(v counterData) { notifications = append(notifications, v) })

	acc := entry.Access()
	acc.Value().Count = 3
	acc.Value().History = append(acc.Value().History, "a", "b")
	acc.Release()

	if len(notifications) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifications))
	}
	if notifications[0].Count != 3 || len(notifications[0].History) != 2 {
		t.Fatalf("unexpected committed value: %+v", notifications[0])
	}
}

func TestAccessReleaseIsIdempotent(t *testing.T) {
	entry := New[int]()

	var count int
	entry.Observe(func(int) { count++ })

	acc := entry.Access()
	*acc.Value() = 42
	acc.Release()
	acc.Release()

	if count != 1 {
		t.Fatalf("expected one notification, got %d", count)
	}
	if got := entry.Read(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestPatchMergesOverCurrent(t *testing.T) {
	type config struct {
		Host    string
		Port    int
		Tags    map[string]string
		Timeout *int
	}

	entry := New[config]()
	timeout := 30
	entry.Write(config{
		Host:    "localhost",
		Port:    8080,
		Tags:    map[string]string{"env": "dev"},
		Timeout: &timeout,
	})

	entry.Patch(config{
		Port: 9090,
		Tags: map[string]string{"region": "eu"},
	})

	got := entry.Read()
	if got.Host != "localhost" {
		t.Fatalf("expected host preserved, got %q", got.Host)
	}
	if got.Port != 9090 {
		t.Fatalf("expected port patched, got %d", got.Port)
	}
	if got.Tags["env"] != "dev" || got.Tags["region"] != "eu" {
		t.Fatalf("expected merged tags, got %v", got.Tags)
	}
	if got.Timeout == nil || *got.Timeout != 30 {
		t.Fatalf("expected timeout preserved, got %v", got.Timeout)
	}
}
