package observable_test

import (
	"sync"
	"testing"

	"github.com/ERRORIK404/calculator_screen/pkg/observable"
	"github.com/stretchr/testify/assert"
)

func TestValue_ReplaysCurrentValue(t *testing.T) {
	v := observable.NewValue("0")
	v.Set("12")

	var got []string
	cancel := v.Observe(func(s string) { got = append(got, s) })
	defer cancel()

	assert.Equal(t, []string{"12"}, got)
	assert.Equal(t, "12", v.Get())
}

func TestValue_BroadcastsToAllObservers(t *testing.T) {
	v := observable.NewValue(false)

	var a, b []bool
	cancelA := v.Observe(func(x bool) { a = append(a, x) })
	cancelB := v.Observe(func(x bool) { b = append(b, x) })

	v.Set(true)
	cancelA()
	v.Set(false)
	cancelB()
	cancelB()
	v.Set(true)

	assert.Equal(t, []bool{false, true}, a)
	assert.Equal(t, []bool{false, true, false}, b)
}

func TestValue_ObserverMaySetFromCallback(t *testing.T) {
	v := observable.NewValue(0)
	seen := 0
	cancel := v.Observe(func(n int) {
		seen = n
		if n == 1 {
			v.Set(2)
		}
	})
	defer cancel()

	v.Set(1)
	assert.Equal(t, 2, seen)
	assert.Equal(t, 2, v.Get())
}

func TestValue_ConcurrentSet(t *testing.T) {
	v := observable.NewValue(0)
	var mu sync.Mutex
	calls := 0
	cancel := v.Observe(func(int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v.Set(n)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 51, calls)
}

func TestValue_CancelledObserversAreDropped(t *testing.T) {
	v := observable.NewValue(0)

	var order []string
	cancelA := v.Observe(func(int) { order = append(order, "a") })
	defer cancelA()
	for i := 0; i < 1000; i++ {
		v.Observe(func(int) {})()
	}
	cancelB := v.Observe(func(int) { order = append(order, "b") })
	defer cancelB()
	cancelC := v.Observe(func(int) { order = append(order, "c") })
	cancelC()

	order = nil
	v.Set(1)
	assert.Equal(t, []string{"a", "b"}, order)
}
