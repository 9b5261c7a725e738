package capture

import (
	"testing"
	"time"

	"github.com/junsooki/ledsim/internal/frame"
)

func TestNewGeneratorValidates(t *testing.T) {
	dim := frame.Dimension{Width: 4, Height: 2}
	tests := []struct {
		name    string
		dim     frame.Dimension
		pattern Pattern
		fps     int
		wantErr bool
	}{
		{"ok", dim, Chase, 30, false},
		{"zero fps", dim, Chase, 0, true},
		{"too fast", dim, Chase, 1000, true},
		{"bad pattern", dim, Pattern("plaid"), 30, true},
		{"bad dimension", frame.Dimension{}, Solid, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.dim, tt.pattern, tt.fps)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGenerator() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderChase(t *testing.T) {
	dim := frame.Dimension{Width: 3, Height: 2}
	g, err := NewGenerator(dim, Chase, 30)
	if err != nil {
		t.Fatal(err)
	}
	for seq := uint64(0); seq < 12; seq++ {
		grid := g.Render(seq)
		lit := 0
		for i, c := range grid.Cells {
			if c != frame.Black {
				lit++
				if uint64(i) != seq%6 {
					t.Errorf("seq %d lit cell %d", seq, i)
				}
			}
		}
		if lit != 1 {
			t.Errorf("seq %d lit %d cells, want 1", seq, lit)
		}
	}
}

func TestRenderSizes(t *testing.T) {
	dim := frame.Dimension{Width: 1, Height: 1}
	for _, p := range Patterns {
		g, err := NewGenerator(dim, p, 10)
		if err != nil {
			t.Fatal(err)
		}
		if grid := g.Render(5); len(grid.Cells) != 1 {
			t.Errorf("%s: %d cells", p, len(grid.Cells))
		}
	}
}

func TestGeneratorStreams(t *testing.T) {
	g, err := NewGenerator(frame.Dimension{Width: 2, Height: 2}, Solid, 200)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.Start(); err == nil {
		t.Error("second Start: expected error")
	}

	select {
	case f := <-g.Frames():
		if f == nil || len(f.Grid.Cells) != 4 {
			t.Fatalf("bad frame %+v", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame within 2s")
	}

	g.Stop()
	for range g.Frames() {
	}
}
