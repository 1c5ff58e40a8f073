package channel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testPubNub(t *testing.T, handler http.HandlerFunc) *PubNub {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	u, _ := url.Parse(server.URL)
	p, err := NewPubNub(PubNubConfig{Host: u.Host, Scheme: "http", PubKey: "pub-k", SubKey: "sub-k"})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPubNubPublish(t *testing.T) {
	var gotPath, gotMessage string
	p := testPubNub(t, func(w http.ResponseWriter, r *http.Request) {
		segments := strings.Split(r.URL.EscapedPath(), "/")
		gotPath = strings.Join(segments[:len(segments)-1], "/")
		gotMessage, _ = url.PathUnescape(segments[len(segments)-1])
		fmt.Fprint(w, `[1,"Sent","16150000000000001"]`)
	})
	tt, err := p.Publish(context.Background(), "global", []byte(`{"tick":true}`))
	if err != nil {
		t.Fatal(err)
	}
	if tt != "16150000000000001" {
		t.Errorf("unexpected timetoken %s", tt)
	}
	if gotPath != "/publish/pub-k/sub-k/0/global/0" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotMessage != `{"tick":true}` {
		t.Errorf("unexpected message %s", gotMessage)
	}
}

func TestPubNubPublishRejected(t *testing.T) {
	p := testPubNub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[0,"Invalid Key","0"]`)
	})
	if _, err := p.Publish(context.Background(), "global", []byte(`{}`)); err == nil {
		t.Fatal("expected rejection error")
	}
}

func TestPubNubSubscribe(t *testing.T) {
	var gotPath string
	p := testPubNub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"t":{"t":"42","r":1},"m":[{"a":"0","d":{"tick":true}},{"d":{"row":1,"col":2}}]}`)
	})
	batch, err := p.Subscribe(context.Background(), "global", "")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/v2/subscribe/sub-k/global/0/0" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if batch.Cursor != "42" || len(batch.Messages) != 2 {
		t.Fatalf("unexpected batch %+v", batch)
	}
	if string(batch.Messages[1]) != `{"row":1,"col":2}` {
		t.Errorf("unexpected message %s", batch.Messages[1])
	}
}

func TestPubNubHTTPError(t *testing.T) {
	p := testPubNub(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	if _, err := p.Subscribe(context.Background(), "global", "1"); err == nil {
		t.Fatal("expected error for 403")
	}
}

func TestPubNubNeedsKeys(t *testing.T) {
	if _, err := NewPubNub(PubNubConfig{}); err == nil {
		t.Fatal("expected missing key error")
	}
	p, err := NewPubNub(PubNubConfig{SubKey: "s"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Publish(context.Background(), "c", []byte("{}")); err == nil {
		t.Fatal("expected missing publish key error")
	}
}
