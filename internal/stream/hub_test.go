package stream

import (
	"context"
	"encoding/json"
	"math"
	"testing"
)

func TestHubCrank(t *testing.T) {
	h := NewHub(nil, quiet)
	c := &Client{ID: "a"}
	tests := []struct {
		msg  Message
		want float64
	}{
		{Message{Type: TypeCrank, Angle: 45}, 45},
		{Message{Type: TypeCrank, Angle: 370}, 10},
		{Message{Type: TypeCrank, Angle: math.NaN()}, 10},
		{Message{Type: TypeCrank, Angle: math.Inf(1)}, 10},
		{Message{Type: "jump", Angle: 90}, 10},
		{Message{Type: TypeCrank, Angle: -30}, -30},
	}
	for _, tt := range tests {
		h.handleMessage(c, &tt.msg)
		if got := h.Angle(); got != tt.want {
			t.Errorf("after %+v: got angle %g, want %g", tt.msg, got, tt.want)
		}
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(func(c *Client) any { return Welcome{Type: TypeWelcome, ClientID: c.ID} }, quiet)
	a := NewClient(h, nil, "a")
	b := NewClient(h, nil, "b")
	h.addClient(a)
	h.addClient(b)
	if h.Len() != 2 {
		t.Fatalf("got %d clients, want 2", h.Len())
	}

	h.Broadcast(Frame{Type: TypeFrame, Tick: 7})
	for _, c := range []*Client{a, b} {
		var w Welcome
		if err := json.Unmarshal(<-c.send, &w); err != nil {
			t.Fatal(err)
		}
		diff(t, Welcome{Type: TypeWelcome, ClientID: c.ID}, w)
		var f Frame
		if err := json.Unmarshal(<-c.send, &f); err != nil {
			t.Fatal(err)
		}
		diff(t, Frame{Type: TypeFrame, Tick: 7}, f)
	}

	h.removeClient(a)
	h.removeClient(a)
	if _, ok := <-a.send; ok {
		t.Error("send channel of removed client is still open")
	}
	h.Broadcast(Frame{Type: TypeFrame, Tick: 8})
	if len(b.send) != 1 {
		t.Errorf("got %d queued messages, want 1", len(b.send))
	}
}

func TestClientDropsWhenFull(t *testing.T) {
	h := NewHub(nil, quiet)
	c := NewClient(h, nil, "slow")
	for i := range sendBuffer + 5 {
		c.Send(Frame{Type: TypeFrame, Tick: int64(i)})
	}
	if len(c.send) != sendBuffer {
		t.Fatalf("got %d queued messages, want %d", len(c.send), sendBuffer)
	}
	var f Frame
	if err := json.Unmarshal(<-c.send, &f); err != nil {
		t.Fatal(err)
	}
	if f.Tick != 0 {
		t.Errorf("oldest queued frame has tick %d, want 0", f.Tick)
	}
}

func TestHubStopped(t *testing.T) {
	h := NewHub(nil, quiet)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	c := NewClient(h, nil, "a")
	if !h.Register(c) {
		t.Fatal("Register failed on a running hub")
	}
	cancel()
	<-done
	if _, ok := <-c.send; ok {
		t.Error("client channel still open after hub stopped")
	}
	if h.Register(NewClient(h, nil, "b")) {
		t.Error("Register succeeded on a stopped hub")
	}
	h.Unregister(c)
	if h.Len() != 0 {
		t.Errorf("got %d clients, want 0", h.Len())
	}
}
