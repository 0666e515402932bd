package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisStateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStateStore(mr.Addr(), "", 0, "inquiry-desk:")
	defer s.Close()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	if _, ok, err := s.Load(ctx, KeyNewInquiry); err != nil || ok {
		t.Fatalf("Load before save: ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"inquiryBuilder":{"type":"BUY"},"step":"/new/contact"}`)
	if err := s.Save(ctx, KeyNewInquiry, payload); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, err := mr.Get("inquiry-desk:" + KeyNewInquiry); err != nil || got != string(payload) {
		t.Errorf("stored value: got %q err=%v", got, err)
	}
	if ttl := mr.TTL("inquiry-desk:" + KeyNewInquiry); ttl != 0 {
		t.Errorf("value should not expire, ttl=%v", ttl)
	}

	got, ok, err := s.Load(ctx, KeyNewInquiry)
	if err != nil || !ok || string(got) != string(payload) {
		t.Fatalf("Load: %s ok=%v err=%v", got, ok, err)
	}

	if err := s.Delete(ctx, KeyNewInquiry); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := s.Load(ctx, KeyNewInquiry); err != nil || ok {
		t.Errorf("Load after delete: ok=%v err=%v", ok, err)
	}
}

func TestRedisStateStoreServerDown(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStateStore(mr.Addr(), "", 0, "")
	defer s.Close()
	mr.Close()

	if _, _, err := s.Load(ctx, KeyInquiries); err == nil {
		t.Error("Load against a stopped server should fail")
	}
}
