package media

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestTimeUnitFormat(t *testing.T) {
	tests := []struct {
		name string
		in   TimeUnit
		want string
	}{
		{"zero", 0, "00:00:00.000"},
		{"one minute", Millis(60000), "00:01:00.000"},
		{"mixed", Millis(3*3_600_000 + 25*60_000 + 7*1000 + 42), "03:25:07.042"},
		{"past a day", Millis(27 * 3_600_000), "27:00:00.000"},
		{"hundred hours", Millis(100 * 3_600_000), "100:00:00.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   TimeUnit
		wantOK bool
	}{
		{"ffprobe style", "1437.123000", Millis(1437123), true},
		{"whole", "60", Millis(60000), true},
		{"sub millisecond truncated", "1.0009", Millis(1000), true},
		{"padded", " 2.5 ", Millis(2500), true},
		{"zero", "0.000000", 0, true},
		{"empty", "", 0, false},
		{"not available", "N/A", 0, false},
		{"garbage", "abc", 0, false},
		{"negative", "-1.0", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSeconds(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseSeconds(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTimeUnitConversions(t *testing.T) {
	if got := FromDuration(1500*time.Millisecond + 999*time.Microsecond); got != Millis(1500) {
		t.Errorf("FromDuration truncation = %d, want 1500", got)
	}
	if got := Millis(-5); got != 0 {
		t.Errorf("Millis(-5) = %d, want 0", got)
	}
	if got := Millis(250).Duration(); got != 250*time.Millisecond {
		t.Errorf("Duration() = %v", got)
	}
	if got := Millis(100).Add(Millis(50)); got.Milliseconds() != 150 {
		t.Errorf("Add = %d, want 150", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	conflict := errors.Wrap(&OverwriteConflictError{Path: "/out/book.chapters.txt"}, "export chapters")
	if !IsOverwriteConflict(conflict) {
		t.Error("IsOverwriteConflict should see through pkg/errors wrapping")
	}
	if IsExternalToolFailure(conflict) {
		t.Error("conflict is not a tool failure")
	}

	cause := errors.New("exit status 1")
	tool := &ExternalToolError{Tool: "mp4chaps", Err: cause}
	if !IsExternalToolFailure(errors.Wrap(tool, "import chapters")) {
		t.Error("IsExternalToolFailure should match wrapped tool errors")
	}
	if errors.Cause(tool) != tool {
		t.Error("Cause should stop at the typed error")
	}
	if !errors.Is(tool, cause) {
		t.Error("ExternalToolError should unwrap to its cause")
	}

	if !IsUnreadableInput(&UnreadableInputError{Path: "/missing"}) {
		t.Error("IsUnreadableInput should match")
	}
	if got := (&UnreadableInputError{Path: "/missing"}).Error(); got != "skipping /missing (does not exist)" {
		t.Errorf("Error() = %q", got)
	}
}
