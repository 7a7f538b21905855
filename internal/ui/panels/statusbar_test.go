package panels

import (
	"strings"
	"testing"
)

func TestStatusBarConnecting(t *testing.T) {
	sb := NewStatusBar()
	sb.SetSize(80)

	if !strings.Contains(sb.View(), "connecting") {
		t.Error("expected connecting state before first poll")
	}
}

func TestStatusBarConnected(t *testing.T) {
	sb := NewStatusBar()
	sb.SetSize(80)
	sb.SetConnection(true, "")
	sb.SetRunCount(3)

	view := sb.View()
	if !strings.Contains(view, "connected") {
		t.Error("expected connected indicator")
	}
	if !strings.Contains(view, "3 runs") {
		t.Error("expected run count")
	}
}

func TestStatusBarSingularRun(t *testing.T) {
	sb := NewStatusBar()
	sb.SetSize(80)
	sb.SetConnection(true, "")
	sb.SetRunCount(1)

	if !strings.Contains(sb.View(), "1 run") {
		t.Error("expected singular run count")
	}
}

func TestStatusBarDisconnected(t *testing.T) {
	sb := NewStatusBar()
	sb.SetSize(120)
	sb.SetConnection(false, "unable to connect to TensorBoard at http://localhost:6006")

	view := sb.View()
	if !strings.Contains(view, "unable to connect") {
		t.Error("expected error text in view")
	}
	if strings.Contains(view, "● connected") {
		t.Error("should not show connected indicator")
	}
}

func TestStatusBarFlash(t *testing.T) {
	sb := NewStatusBar()
	sb.SetSize(80)
	sb.SetFlashWithLevel("copied exp1/train", FlashSuccess)

	if !strings.Contains(sb.View(), "copied exp1/train") {
		t.Error("expected flash message")
	}

	sb.ClearFlash()
	if strings.Contains(sb.View(), "copied exp1/train") {
		t.Error("expected flash cleared")
	}
}

func TestStatusBarHelpHint(t *testing.T) {
	sb := NewStatusBar()
	sb.SetSize(80)
	if !strings.Contains(sb.View(), "?:help") {
		t.Error("expected help hint")
	}
}
