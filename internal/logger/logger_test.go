package logger

import "testing"

func TestNew_Modes(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"", "development", "production", "PROD"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("mode %q: unexpected error: %v", mode, err)
		}
		log.With("mode", mode).Debug("logger ready")
	}
}

func TestNew_RejectsUnknownMode(t *testing.T) {
	t.Parallel()

	if _, err := New("verbose"); err == nil {
		t.Fatalf("expected error for unsupported mode")
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	t.Parallel()

	log := Nop()
	log.Info("ignored", "key", "value")
	log.Warn("ignored")
	log.Sync()
}
