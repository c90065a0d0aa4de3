package dispatch

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_WaitCoversAllMembers(t *testing.T) {
	d := newTestDispatcher(t)

	var taskA, taskB atomic.Bool
	g := d.NewGroup().
		Go(func() {
			time.Sleep(5 * time.Millisecond)
			taskA.Store(true)
		}).
		Go(func() {
			time.Sleep(10 * time.Millisecond)
			taskB.Store(true)
		})
	g.Wait()

	if !taskA.Load() || !taskB.Load() {
		t.Errorf("Wait returned early: a=%v b=%v", taskA.Load(), taskB.Load())
	}
}

func TestGroup_Shorthand(t *testing.T) {
	d := newTestDispatcher(t)

	var ran atomic.Bool
	d.Group(func() { ran.Store(true) }).Wait()

	if !ran.Load() {
		t.Error("shorthand group task did not run before Wait returned")
	}
}

func TestGroup_GoAt_MixedPriorities(t *testing.T) {
	d := newTestDispatcher(t)

	var ran atomic.Int32
	g := d.NewGroup()
	for _, p := range []Priority{PriorityLow, PriorityDefault, PriorityHigh} {
		g.GoAt(p, func() { ran.Add(1) })
	}
	g.Wait()

	if ran.Load() != 3 {
		t.Errorf("expected 3 members to run, got %d", ran.Load())
	}
}

func TestGroup_WaitTimeout(t *testing.T) {
	d := newTestDispatcher(t)

	g := d.Group(func() { time.Sleep(300 * time.Millisecond) })

	if err := g.WaitTimeout(30 * time.Millisecond); !errors.Is(err, ErrWaitTimeout) {
		t.Errorf("expected ErrWaitTimeout, got %v", err)
	}
	if err := g.WaitTimeout(2 * time.Second); err != nil {
		t.Errorf("expected eventual drain, got %v", err)
	}
}

func TestGroup_Notify(t *testing.T) {
	d := newTestDispatcher(t)

	var members atomic.Int32
	g := d.NewGroup()
	for iter := 0; iter < 5; iter++ {
		g.Go(func() {
			time.Sleep(5 * time.Millisecond)
			members.Add(1)
		})
	}

	notified := make(chan int32, 1)
	g.Notify(func() { notified <- members.Load() })

	select {
	case n := <-notified:
		if n != 5 {
			t.Errorf("notification saw %d of 5 members finished", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification never fired")
	}
}

func TestGroup_NotifyOn_SerialQueue(t *testing.T) {
	d := newTestDispatcher(t)

	g := d.Group(func() {})
	s := d.Executor().SerialQueue("group.completion")

	notified := make(chan struct{})
	g.NotifyOn(s, func() { close(notified) })

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("serial-queue notification never fired")
	}
}

func TestGroup_Pending(t *testing.T) {
	d := newTestDispatcher(t)

	g := d.NewGroup()
	if g.Pending() != 0 {
		t.Fatalf("fresh group pending = %d", g.Pending())
	}

	release := make(chan struct{})
	g.Go(func() { <-release }).Go(func() { <-release })

	if g.Pending() != 2 {
		t.Errorf("expected 2 pending, got %d", g.Pending())
	}
	close(release)
	g.Wait()
	if g.Pending() != 0 {
		t.Errorf("expected 0 pending after Wait, got %d", g.Pending())
	}
}
