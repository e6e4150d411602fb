package toast

import (
	"testing"
	"time"
)

func TestNotifierShowsAndClears(t *testing.T) {
	n := NewNotifier(30 * time.Millisecond)
	n.Success("Chamado salvo com sucesso.")

	got := n.Current()
	if got == nil || got.Text != "Chamado salvo com sucesso." || got.Type != TypeSuccess {
		t.Fatalf("Current = %+v", got)
	}

	time.Sleep(120 * time.Millisecond)
	if n.Current() != nil {
		t.Error("message not cleared after the timeout")
	}
}

func TestNotifierNewMessageSurvivesStaleTimer(t *testing.T) {
	n := NewNotifier(40 * time.Millisecond)
	n.Success("primeira")
	time.Sleep(25 * time.Millisecond)

	// the second message re-arms the timer; the first one's deadline
	// passing must not blank it
	n.Error("segunda")
	time.Sleep(25 * time.Millisecond)

	got := n.Current()
	if got == nil || got.Text != "segunda" {
		t.Fatalf("Current = %+v, want segunda still visible", got)
	}

	time.Sleep(120 * time.Millisecond)
	if n.Current() != nil {
		t.Error("second message never cleared")
	}
}

func TestNotifierDismiss(t *testing.T) {
	n := NewNotifier(time.Minute)
	n.Show("aviso", TypeInfo)
	n.Dismiss()
	if n.Current() != nil {
		t.Error("Dismiss left a message in the slot")
	}
}
