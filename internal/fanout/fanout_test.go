package fanout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/charleschow/hoops-analyst/internal/core/projection"
	"github.com/charleschow/hoops-analyst/internal/events"
)

func sampleEvent(t events.EventType, gameID string) events.Event {
	pe := events.ProjectionEvent{
		GameID:    gameID,
		TeamA:     projection.DefaultTeam("Boston"),
		TeamB:     projection.DefaultTeam("Charlotte"),
		Market:    projection.DefaultMarket(),
		Constants: projection.DefaultLeagueConstants(),
		Results:   projection.Results{PFinal: 99.3, TotalProj: 233, Triggers: projection.Triggers{Total: true}},
	}
	return events.New(t, gameID, pe)
}

func TestProtocolPreservesPayload(t *testing.T) {
	in := sampleEvent(events.EventEdge, "bos@cha")
	data, err := MarshalEvent(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := UnmarshalEvent(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != in.ID || out.Type != in.Type || out.GameID != in.GameID || !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("envelope mismatch: got %+v", out)
	}
	pe, ok := out.Payload.(events.ProjectionEvent)
	if !ok {
		t.Fatalf("payload type %T", out.Payload)
	}
	if pe.Results.TotalProj != 233 || !pe.Results.Triggers.Total || pe.TeamB.Name != "Charlotte" {
		t.Errorf("payload = %+v", pe)
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	if _, err := UnmarshalEvent([]byte(`{"type":"score_change","payload":{}}`)); err == nil {
		t.Error("expected error for unknown event type")
	}
	if _, err := UnmarshalEvent([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed envelope")
	}
}

func TestSubscriptionWants(t *testing.T) {
	proj := sampleEvent(events.EventProjection, "bos@cha")
	edge := sampleEvent(events.EventEdge, "bos@cha")
	other := sampleEvent(events.EventProjection, "den@phx")

	tests := []struct {
		name string
		sub  subscription
		evt  events.Event
		want bool
	}{
		{"all gets projection", subscription{}, proj, true},
		{"all skips edge copy", subscription{}, edge, false},
		{"game filter match", subscription{gameID: "bos@cha"}, proj, true},
		{"game filter miss", subscription{gameID: "bos@cha"}, other, false},
		{"edges gets edge", subscription{edgesOnly: true}, edge, true},
		{"edges skips projection", subscription{edgesOnly: true}, proj, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.wants(tt.evt); got != tt.want {
				t.Errorf("wants = %v, want %v", got, tt.want)
			}
		})
	}
}

func waitForClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", s.ClientCount(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServerForwardsToFilteredClient(t *testing.T) {
	bus := events.NewBus()
	s := NewServer(bus)
	ts := httptest.NewServer(http.HandlerFunc(s.HandleWS))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?game=bos@cha"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, s, 1)

	bus.Publish(sampleEvent(events.EventProjection, "den@phx"))
	bus.Publish(sampleEvent(events.EventProjection, "bos@cha"))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	evt, err := UnmarshalEvent(msg)
	if err != nil {
		t.Fatal(err)
	}
	if evt.GameID != "bos@cha" {
		t.Errorf("received game %q, want bos@cha", evt.GameID)
	}
}

func TestClientRepublishes(t *testing.T) {
	serverBus := events.NewBus()
	s := NewServer(serverBus)
	ts := httptest.NewServer(http.HandlerFunc(s.HandleWS))
	defer ts.Close()

	localBus := events.NewBus()
	got := make(chan events.Event, 1)
	localBus.Subscribe(events.EventEdge, func(e events.Event) error {
		got <- e
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := NewClient(strings.TrimPrefix(ts.URL, "http://"), "", true, localBus)
	go c.ConnectWithRetry(ctx)
	waitForClients(t, s, 1)

	serverBus.Publish(sampleEvent(events.EventProjection, "bos@cha"))
	serverBus.Publish(sampleEvent(events.EventEdge, "bos@cha"))

	select {
	case e := <-got:
		if e.Type != events.EventEdge || e.GameID != "bos@cha" {
			t.Errorf("republished %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client did not republish the edge")
	}
}

func TestClientURL(t *testing.T) {
	c := NewClient("localhost:8090", "bos@cha", true, nil)
	if got := c.url(); got != "ws://localhost:8090/ws?edges=1&game=bos%40cha" {
		t.Errorf("url = %q", got)
	}
}
