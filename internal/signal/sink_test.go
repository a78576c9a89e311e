package signal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type recordSink struct {
	payloads []string
	err      error
	closed   bool
}

func (s *recordSink) Emit(payload string) error {
	s.payloads = append(s.payloads, payload)
	return s.err
}

func (s *recordSink) Close() error {
	s.closed = true
	return nil
}

func TestFileSink_LastLabelOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDirectionFile)
	sink := NewFileSink(path)
	if sink.Path() != path {
		t.Errorf("Path() = %q, want %q", sink.Path(), path)
	}

	for _, label := range []string{"none", "right", "left"} {
		if err := sink.Emit(label); err != nil {
			t.Fatalf("Emit(%q) error = %v", label, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "left" {
		t.Errorf("file contents = %q, want %q", data, "left")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the direction file", len(entries))
	}
}

func TestFileSink_MissingDirectory(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "missing", "direction.txt"))
	if err := sink.Emit("left"); err == nil {
		t.Error("Emit() should fail when the directory does not exist")
	}
}

func TestUDPSink_RoundTrip(t *testing.T) {
	l, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer l.Close()

	sink, err := NewUDPSink(l.Addr())
	if err != nil {
		t.Fatalf("NewUDPSink() error = %v", err)
	}
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- l.Serve(ctx, func(p string) { got <- p })
	}()

	if err := sink.Emit("Open Palm - Right"); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	select {
	case p := <-got:
		if p != "Open Palm - Right" {
			t.Errorf("received %q", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for datagram")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not stop after cancel")
	}
}

func TestUDPSink_NoReceiver(t *testing.T) {
	l, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := l.Addr()
	l.Close()

	sink, err := NewUDPSink(addr)
	if err != nil {
		t.Fatalf("NewUDPSink() error = %v", err)
	}
	defer sink.Close()

	for i := 0; i < 10; i++ {
		if err := sink.Emit("Closed Fist - Left"); err != nil {
			t.Fatalf("Emit() #%d error = %v, want nil with nobody listening", i, err)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewUDPSink_BadAddress(t *testing.T) {
	if _, err := NewUDPSink("not-an-address"); err == nil {
		t.Error("NewUDPSink() should reject an address without a port")
	}
}

func TestMulti(t *testing.T) {
	a := &recordSink{}
	b := &recordSink{err: errors.New("unreachable")}
	c := &recordSink{}
	m := Multi{a, b, c}

	err := m.Emit("left")
	if err == nil {
		t.Error("Emit() should report the failing sink")
	}
	for i, s := range []*recordSink{a, b, c} {
		if len(s.payloads) != 1 || s.payloads[0] != "left" {
			t.Errorf("sink %d payloads = %v", i, s.payloads)
		}
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !a.closed || !b.closed || !c.closed {
		t.Error("Close() should close every sink")
	}
}
