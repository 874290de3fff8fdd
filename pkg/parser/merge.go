package parser

import (
	"container/heap"
	"context"
	"errors"
	"io"
	"time"
)

// Stamp is a located match together with its parsed instant.
type Stamp struct {
	Match Match
	Time  time.Time
}

// StampSource provides an iterator over parsed stamps.
type StampSource interface {
	// Next returns the next stamp. Returns io.EOF when exhausted.
	Next(ctx context.Context) (*Stamp, error)
}

// SliceSource serves stamps from a slice in order.
type SliceSource struct {
	stamps []Stamp
	pos    int
}

// NewSliceSource creates a StampSource over stamps.
func NewSliceSource(stamps []Stamp) *SliceSource {
	return &SliceSource{stamps: stamps}
}

// Next returns the next stamp of the slice.
func (s *SliceSource) Next(ctx context.Context) (*Stamp, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.stamps) {
		return nil, io.EOF
	}
	st := &s.stamps[s.pos]
	s.pos++
	return st, nil
}

// MergedSource combines several stamp sources into one chronological stream
// (oldest first). Equal instants are served in source order, so each input
// must already be chronological for the result to be.
type MergedSource struct {
	sources []StampSource
	heap    *stampHeap
	started bool
}

// NewMergedSource creates a StampSource that merges sources by instant.
func NewMergedSource(sources ...StampSource) *MergedSource {
	return &MergedSource{
		sources: sources,
		heap:    &stampHeap{},
	}
}

// Next returns the next stamp in instant order across all sources.
func (m *MergedSource) Next(ctx context.Context) (*Stamp, error) {
	if !m.started {
		m.started = true
		if err := m.initHeap(ctx); err != nil {
			return nil, err
		}
	}

	if m.heap.Len() == 0 {
		return nil, io.EOF
	}

	item := heap.Pop(m.heap).(*heapItem)

	next, err := m.sources[item.sourceIdx].Next(ctx)
	switch {
	case err == nil:
		heap.Push(m.heap, &heapItem{stamp: next, sourceIdx: item.sourceIdx})
	case !errors.Is(err, io.EOF):
		return nil, err
	}

	return item.stamp, nil
}

func (m *MergedSource) initHeap(ctx context.Context) error {
	heap.Init(m.heap)
	for i, src := range m.sources {
		st, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			continue
		}
		if err != nil {
			return err
		}
		heap.Push(m.heap, &heapItem{stamp: st, sourceIdx: i})
	}
	return nil
}

// MergeStamps merges per-source stamp lists into one chronological list.
func MergeStamps(ctx context.Context, groups ...[]Stamp) ([]Stamp, error) {
	sources := make([]StampSource, len(groups))
	total := 0
	for i, g := range groups {
		sources[i] = NewSliceSource(g)
		total += len(g)
	}

	merged := NewMergedSource(sources...)
	out := make([]Stamp, 0, total)
	for {
		st, err := merged.Next(ctx)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
}

type heapItem struct {
	stamp     *Stamp
	sourceIdx int
}

// stampHeap implements heap.Interface ordered by instant, then source index.
type stampHeap []*heapItem

func (h stampHeap) Len() int { return len(h) }

func (h stampHeap) Less(i, j int) bool {
	a, b := h[i].stamp.Time, h[j].stamp.Time
	if a.Equal(b) {
		return h[i].sourceIdx < h[j].sourceIdx
	}
	return a.Before(b)
}

func (h stampHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *stampHeap) Push(x any) {
	*h = append(*h, x.(*heapItem))
}

func (h *stampHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
