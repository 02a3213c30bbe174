package preview

import (
	"errors"
	"testing"
)

func handle(t *testing.T, id string) *Handle {
	t.Helper()
	return NewHandle([]byte(id), "image/jpeg", nil)
}

func TestManager_ActivateAndCommit(t *testing.T) {
	m := NewManager()

	seq := m.Activate("A")
	sess, ok := m.Current()
	if !ok || sess.LogID != "A" || !sess.Loading || sess.Seq != seq {
		t.Fatalf("session after activation = %#v, want loading A seq=%d", sess, seq)
	}

	img := handle(t, "A")
	if !m.Resolve(seq, img, nil) {
		t.Fatal("Resolve with matching seq should commit")
	}
	sess, _ = m.Current()
	if sess.Loading || sess.Image != img || sess.Err != nil {
		t.Fatalf("session after commit = %#v", sess)
	}
	if img.Released() {
		t.Fatal("committed image must stay alive")
	}
}

func TestManager_SupersededResultIsDiscardedAndReleased(t *testing.T) {
	m := NewManager()

	seqA := m.Activate("A")
	seqB := m.Activate("B")

	// A's late response: must not be exposed, its resource released.
	imgA := handle(t, "A")
	if m.Resolve(seqA, imgA, nil) {
		t.Fatal("stale completion must not commit")
	}
	if !imgA.Released() {
		t.Fatal("stale completion's resource must be released immediately")
	}
	sess, ok := m.Current()
	if !ok || sess.LogID != "B" || !sess.Loading {
		t.Fatalf("session after stale arrival = %#v, want loading B", sess)
	}

	// B's response commits normally afterwards.
	imgB := handle(t, "B")
	if !m.Resolve(seqB, imgB, nil) {
		t.Fatal("current completion should commit")
	}
	sess, _ = m.Current()
	if sess.LogID != "B" || sess.Image != imgB {
		t.Fatalf("committed session = %#v, want B's outcome", sess)
	}
	if imgB.Released() {
		t.Fatal("B's committed image must stay alive")
	}
}

func TestManager_ActivationReleasesPriorCommittedImage(t *testing.T) {
	m := NewManager()

	seqA := m.Activate("A")
	imgA := handle(t, "A")
	m.Resolve(seqA, imgA, nil)

	m.Activate("B")
	if !imgA.Released() {
		t.Fatal("prior committed resource must be released when superseded")
	}
}

func TestManager_CloseInvalidatesOutstandingFetch(t *testing.T) {
	m := NewManager()

	seqA := m.Activate("A")
	m.Close()

	if _, ok := m.Current(); ok {
		t.Fatal("session should be empty after close")
	}

	imgA := handle(t, "A")
	if m.Resolve(seqA, imgA, nil) {
		t.Fatal("completion after close must not commit")
	}
	if !imgA.Released() {
		t.Fatal("completion after close must release its resource")
	}
	if _, ok := m.Current(); ok {
		t.Fatal("no session state may change on a post-close arrival")
	}
}

func TestManager_CloseReleasesHeldImage(t *testing.T) {
	m := NewManager()

	seq := m.Activate("A")
	img := handle(t, "A")
	m.Resolve(seq, img, nil)

	m.Close()
	if !img.Released() {
		t.Fatal("close must release the held resource")
	}
}

func TestManager_ErrorScopedToSession(t *testing.T) {
	m := NewManager()

	seq := m.Activate("A")
	if !m.Resolve(seq, nil, errors.New("no preview")) {
		t.Fatal("error completion with matching seq should commit")
	}
	sess, _ := m.Current()
	if sess.Loading || sess.Err == nil || sess.Image != nil {
		t.Fatalf("session after error = %#v", sess)
	}

	// A fresh activation for the same log starts clean.
	seq2 := m.Activate("A")
	sess, _ = m.Current()
	if sess.Err != nil || !sess.Loading || sess.Seq != seq2 {
		t.Fatalf("session after re-activation = %#v", sess)
	}
}

func TestManager_SequenceStrictlyIncreases(t *testing.T) {
	m := NewManager()

	s1 := m.Activate("A")
	m.Close()
	s2 := m.Activate("B")
	if s2 <= s1+1 {
		t.Fatalf("close must consume a sequence step: s1=%d s2=%d", s1, s2)
	}
}

func TestHandle_ReleaseIsIdempotent(t *testing.T) {
	calls := 0
	h := NewHandle([]byte{1, 2}, "image/jpeg", func() { calls++ })

	h.Release()
	h.Release()
	if calls != 1 {
		t.Fatalf("onRelease ran %d times, want 1", calls)
	}
	if !h.Released() || h.Data != nil {
		t.Fatalf("handle not cleared after release: %#v", h)
	}

	// Nil handles tolerate release.
	var nilHandle *Handle
	nilHandle.Release()
}
