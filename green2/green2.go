/*
DESCRIPTION
  green2.go builds the green2 working matrix: a dense, row-major
  (cal_num x area_h*area_w) byte matrix holding the green channel of each
  analyzed frame over the analyzed area.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package green2 extracts the green channel of a rectangular sub-area from
// a contiguous range of video packets into the dense matrix that every
// downstream stage (peak detection, solving) operates on.
package green2

import (
	"fmt"
	"sync"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/model"
	"github.com/starpact/tlc-core/progress"
	"github.com/starpact/tlc-core/video"
)

// Matrix is the dense (calNum x area pixels) green2 matrix.
type Matrix struct {
	rows, cols int
	data       []byte
}

// NewMatrix wraps raw row-major green byte data as a Matrix, for callers
// that already have green2 data in hand (e.g. tests, or a matrix read
// back from a cached result) rather than building it from video packets.
func NewMatrix(rows, cols int, data []byte) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Rows returns cal_num.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns area_h*area_w.
func (m *Matrix) Cols() int { return m.cols }

// Row returns a view of frame row i, laid out row-major over the area.
func (m *Matrix) Row(i int) []byte { return m.data[i*m.cols : (i+1)*m.cols] }

// Column copies column j (the green history of pixel j across all frames)
// into dst, growing it if necessary, and returns the (possibly
// reallocated) slice.
func (m *Matrix) Column(j int, dst []byte) []byte {
	if cap(dst) < m.rows {
		dst = make([]byte, m.rows)
	}
	dst = dst[:m.rows]
	for i := 0; i < m.rows; i++ {
		dst[i] = m.data[i*m.cols+j]
	}
	return dst
}

// Build decodes packets[start : start+calNum] in parallel across workers
// goroutines and copies the green byte of every pixel in area into the
// corresponding green2 row, row-major. prog is incremented once per
// completed row and checked for external cancellation; decode failure in
// any packet fails the whole build with errs.Decode, and an externally
// raised prog aborts the build with errs.Aborted.
func Build(store *video.Store, pool *video.DecoderPool, start, calNum int, area model.Area, workers int, prog *progress.Counter) (*Matrix, error) {
	if start < 0 || calNum < 0 || start+calNum > store.Len() {
		return nil, errs.New(errs.InvalidParam, fmt.Sprintf("range [%d, %d) out of bounds for %d packets", start, start+calNum, store.Len()))
	}
	if workers < 1 {
		workers = 1
	}

	m := &Matrix{rows: calNum, cols: area.Pixels()}
	m.data = make([]byte, calNum*m.cols)

	rowIdx := make(chan int)
	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		stop    = make(chan struct{})
		buildErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			buildErr = err
			close(stop)
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := pool.Get()
			defer pool.Put(d)

			for i := range rowIdx {
				select {
				case <-stop:
					return
				default:
				}

				frame, err := d.Decode(store.At(start + i))
				if err != nil {
					fail(err)
					return
				}
				row := m.Row(i)
				k := 0
				for y := area.TopLeftY; y < area.TopLeftY+area.Height; y++ {
					for x := area.TopLeftX; x < area.TopLeftX+area.Width; x++ {
						row[k] = video.GreenAt(frame, y, x)
						k++
					}
				}
				prog.Add(1)
				if prog.Aborted() {
					fail(errs.New(errs.Aborted, "green2 build aborted"))
					return
				}
			}
		}()
	}

	go func() {
		defer close(rowIdx)
		for i := 0; i < calNum; i++ {
			select {
			case rowIdx <- i:
			case <-stop:
				return
			}
		}
	}()

	wg.Wait()
	if buildErr != nil {
		return nil, buildErr
	}
	return m, nil
}
