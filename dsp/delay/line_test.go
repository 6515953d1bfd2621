package delay

import (
	"testing"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/internal/testutil"
)

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Fatal("expected error for maxDelay=-1")
	}
	d, err := New(0)
	if err != nil {
		t.Fatalf("New(0): %v", err)
	}
	if d.Delay() != 0 {
		t.Fatalf("Delay: got %d want 0", d.Delay())
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	if d.Delay() != 16 || d.Cap() != 16 {
		t.Fatalf("Delay/Cap: got %d/%d want 16/16", d.Delay(), d.Cap())
	}
}

// --- sample processing ---

func TestProcessSampleDelay(t *testing.T) {
	for _, delay := range []int{1, 3, 7, 200} {
		d, err := New(delay)
		if err != nil {
			t.Fatal(err)
		}
		in := testutil.Impulse(delay+10, 0)
		for i, x := range in {
			got := d.ProcessSample(x)
			want := 0.0
			if i == delay {
				want = 1
			}
			if got != want {
				t.Fatalf("delay %d, index %d: got %v want %v", delay, i, got, want)
			}
		}
	}
}

func TestZeroDelayBypass(t *testing.T) {
	d, err := New(0)
	if err != nil {
		t.Fatal(err)
	}
	src := testutil.Noise(1, 1, 64)
	dst := make([]float64, len(src))
	d.ProcessBlock(dst, src)
	testutil.RequireSliceNearlyEqual(t, dst, src, 0)
	if got := d.ProcessSample(0.25); got != 0.25 {
		t.Fatalf("ProcessSample: got %v want 0.25", got)
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// tap=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
	if got := d.Read(9); got != 0 {
		t.Fatalf("out of range tap: got %v want 0", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(float64(i))
	}
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	if got := d.Read(4); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

// --- block processing ---

func TestProcessBlockMatchesSampleProcessing(t *testing.T) {
	src := testutil.Noise(7, 1, 1000)

	a, _ := New(37)
	b, _ := New(37)

	want := make([]float64, len(src))
	for i, x := range src {
		want[i] = a.ProcessSample(x)
	}

	got := make([]float64, len(src))
	// Uneven block sizes exercise wraparound across calls.
	for start, size := 0, 1; start < len(src); size = size*2 + 1 {
		end := min(start+size, len(src))
		b.ProcessBlock(got[start:end], src[start:end])
		start = end
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestProcessBlockInPlace(t *testing.T) {
	d, _ := New(2)
	buf := []float64{1, 2, 3, 4, 5}
	d.ProcessBlock(buf, buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 0, 1, 2, 3}, 0)
}

// --- reconfiguration ---

func TestSetDelayResetsState(t *testing.T) {
	d, _ := New(8)
	for i := 0; i < 8; i++ {
		d.Write(1)
	}
	if err := d.SetDelay(4); err != nil {
		t.Fatal(err)
	}
	if d.Cap() != 8 {
		t.Fatalf("shrinking must keep capacity: got %d", d.Cap())
	}
	for i := 1; i <= 4; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after SetDelay Read(%d): got %v want 0", i, got)
		}
	}
	if err := d.SetDelay(32); err != nil {
		t.Fatal(err)
	}
	if d.Cap() < 32 {
		t.Fatalf("growing must extend capacity: got %d", d.Cap())
	}
	if err := d.SetDelay(-1); err == nil {
		t.Fatal("expected error for negative delay")
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 1; i <= 4; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

func TestMulti(t *testing.T) {
	if _, err := NewMulti(0, 4); err == nil {
		t.Fatal("expected error for zero channels")
	}
	m, err := NewMulti(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetDelay(3); err != nil {
		t.Fatal(err)
	}
	for ch := 0; ch < m.Channels(); ch++ {
		if m.Channel(ch).Delay() != 3 {
			t.Fatalf("channel %d delay = %d", ch, m.Channel(ch).Delay())
		}
	}
	m.Channel(0).ProcessSample(1)
	m.Reset()
	if got := m.Channel(0).Read(1); got != 0 {
		t.Fatalf("after reset: got %v", got)
	}
}
