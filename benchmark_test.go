package glade

import (
	"fmt"
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchWorld creates a world with n finished buildings scattered on the
// grid and runs one Update so the layout and depth order are settled.
func setupBenchWorld(b *testing.B, theme string, n int) *World {
	b.Helper()
	cfg := DefaultConfig()
	cfg.Theme = theme
	w, err := NewWorld(cfg,
		WithLogger(newLogger(io.Discard, log.ErrorLevel)),
		WithRand(rand.New(rand.NewSource(7))),
	)
	if err != nil {
		b.Fatalf("NewWorld: %v", err)
	}
	b.Cleanup(w.Destroy)

	w.UpdateEntityPositions(benchEntities(n, 1))
	if err := w.Update(); err != nil {
		b.Fatalf("Update: %v", err)
	}
	return w
}

func benchEntities(n int, progress float64) []WorldEntity {
	list := make([]WorldEntity, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, WorldEntity{
			ID:                   fmt.Sprintf("e%03d", i),
			Pos:                  GridPos{X: float64(i % 10), Y: float64(i / 10)},
			Level:                1 + i%4,
			ConstructionProgress: progress,
			StyleSeed:            uint32(i) * 2654435761,
		})
	}
	return list
}

// --- Frame Draw Benchmarks ---

func BenchmarkDraw_60Buildings_Cached(b *testing.B) {
	w := setupBenchWorld(b, "city", 60)
	screen := ebiten.NewImage(1280, 720)

	// Warm up: first draw renders every building into the bitmap cache.
	w.Draw(screen)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Draw(screen)
	}
}

func BenchmarkDraw_60Buildings_Construction(b *testing.B) {
	w := setupBenchWorld(b, "city", 60)
	screen := ebiten.NewImage(1280, 720)

	// Unfinished buildings bypass the cache, so every frame pays the full
	// geometry cost.
	w.UpdateEntityPositions(benchEntities(60, 0.5))
	if err := w.Update(); err != nil {
		b.Fatalf("Update: %v", err)
	}
	w.Draw(screen)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Draw(screen)
	}
}

func BenchmarkDraw_VillageWithWalkers(b *testing.B) {
	w := setupBenchWorld(b, "village", 40)
	screen := ebiten.NewImage(1280, 720)
	w.Draw(screen)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Draw(screen)
	}
}

// --- Update Benchmarks ---

func BenchmarkUpdate_Steady(b *testing.B) {
	w := setupBenchWorld(b, "city", 60)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := w.Update(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUpdate_NetworkWalkers(b *testing.B) {
	w := setupBenchWorld(b, "village", 40)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := w.Update(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUpdateEntityPositions_Unchanged(b *testing.B) {
	w := setupBenchWorld(b, "city", 200)
	list := benchEntities(200, 1)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.UpdateEntityPositions(list)
	}
}

func BenchmarkUpdateEntityPositions_Relayout(b *testing.B) {
	w := setupBenchWorld(b, "city", 200)
	moved := benchEntities(200, 1)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Nudge one entity so every iteration dirties the layout and the
		// following Update regenerates roads and block assignments.
		moved[0].Pos.X = float64(i % 3)
		w.UpdateEntityPositions(moved)
		if err := w.Update(); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Depth Sort Benchmarks ---

func BenchmarkDepthSort_1000Coherent(b *testing.B) {
	w := setupBenchWorld(b, "city", 1000)
	w.depthSort()

	// After the warmup sort the order is frame-coherent, which is the
	// steady-state insertion sort workload.
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.depthSort()
	}
}
