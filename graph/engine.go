/*
DESCRIPTION
  engine.go provides Engine, the dependency-graph reader/writer: every
  tunable input is a leaf behind a validated setter, and every derived
  datum is a node memoized by the structural identity of its inputs
  (keys.go), recomputed lazily on read and cached per cache.go.
  This is the module's hardest and most original component: no generic
  DAG/memoization library exists anywhere in the retrieved example pack,
  so the six node caches are hand-rolled instances of the generic cache
  type, wired together the way revid.Revid wires its own lifecycle
  plumbing (sync.Mutex-guarded state, a worker pool, cooperative
  cancellation via a shared counter).

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package graph

import (
	"sync"

	"github.com/ausocean/utils/logging"

	"github.com/starpact/tlc-core/daq"
	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/green2"
	"github.com/starpact/tlc-core/model"
	"github.com/starpact/tlc-core/peak"
	"github.com/starpact/tlc-core/solve"
	"github.com/starpact/tlc-core/video"
)

// DaqLoader parses the DAQ file at path into a dense matrix. The
// LVM/XLSX file-format decode itself is collaborator-owned; the engine
// only tracks the result's identity and caches it. A collaborator
// supplies this at construction time.
type DaqLoader func(path string) (*daq.Matrix, error)

type videoResult struct {
	meta  video.VideoMeta
	store *video.Store
}

// Engine is the dependency-graph reader/writer. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	pool        *Pool
	log         logging.Logger
	daqLoader   DaqLoader
	decoderPool *video.DecoderPool

	mu       sync.Mutex
	setting  Setting
	videoGen uint64
	daqGen   uint64

	videoCache  *cache[videoKey, videoResult]
	daqCache    *cache[daqKey, *daq.Matrix]
	green2Cache *cache[green2Key, *green2.Matrix]
	peakCache   *cache[peakKey, []int]
	interpCache *cache[interpKey, *daq.Interpolator]
	solveCache  *cache[solveKey, *solve.Nu2]
}

// NewEngine returns an Engine with an empty Setting. pool sizes every
// parallel stage; log receives warnings from the video load; loadDaq
// is the collaborator-supplied DAQ file parser.
func NewEngine(pool *Pool, log logging.Logger, loadDaq DaqLoader) *Engine {
	return &Engine{
		pool:        pool,
		log:         log,
		daqLoader:   loadDaq,
		decoderPool: video.NewDecoderPool(pool.Size()),
		videoCache:  new(cache[videoKey, videoResult]),
		daqCache:    new(cache[daqKey, *daq.Matrix]),
		green2Cache: new(cache[green2Key, *green2.Matrix]),
		peakCache:   new(cache[peakKey, []int]),
		interpCache: new(cache[interpKey, *daq.Interpolator]),
		solveCache:  new(cache[solveKey, *solve.Nu2]),
	}
}

// Close releases the engine's decoder pool. The engine must not be used
// afterward.
func (e *Engine) Close() { e.decoderPool.Close() }

// Setting returns a copy of the current leaf values.
func (e *Engine) Setting() Setting {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setting.clone()
}

// --- setters -----------------------------------------------------------

// SetName sets the setting's display name; purely descriptive, no node
// depends on it.
func (e *Engine) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setting.Name = name
}

// SetSaveRootDir sets the directory a collaborator writer would save
// results under; purely descriptive, no node depends on it.
func (e *Engine) SetSaveRootDir(dir string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setting.SaveRootDir = dir
}

// SetVideoPath sets video_path, clearing start_index and aborting any
// in-flight computation that depended on the previous video identity. A
// no-op if path is unchanged.
func (e *Engine) SetVideoPath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.VideoPath == path {
		return
	}
	e.setting.VideoPath = path
	e.setting.hasStart = false
	e.setting.Start = model.StartIndex{}
	e.videoCache.abortActive()
	e.green2Cache.abortActive()
	e.peakCache.abortActive()
	e.solveCache.abortActive()
}

// SetDaqPath sets daq_path, clearing start_index and aborting any
// in-flight computation that depended on the previous daq identity. A
// no-op if path is unchanged.
func (e *Engine) SetDaqPath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.DaqPath == path {
		return
	}
	e.setting.DaqPath = path
	e.setting.hasStart = false
	e.setting.Start = model.StartIndex{}
	e.daqCache.abortActive()
	e.interpCache.abortActive()
	e.solveCache.abortActive()
}

// SetStart validates start against the current video/DAQ totals (reading
// both, which may themselves trigger a recompute) and sets start_index. A
// no-op if start is structurally equal to the current value.
func (e *Engine) SetStart(start model.StartIndex) error {
	videoMeta, err := e.ReadVideoMeta()
	if err != nil {
		return err
	}
	daqMat, err := e.ReadDaq()
	if err != nil {
		return err
	}
	if err := start.Validate(int(videoMeta.NFrames), daqMat.NRows()); err != nil {
		return errs.Wrap(errs.InvalidParam, "invalid start index", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.hasStart && e.setting.Start == start {
		return nil
	}
	e.setting.hasStart = true
	e.setting.Start = start
	e.green2Cache.abortActive()
	e.peakCache.abortActive()
	e.interpCache.abortActive()
	e.solveCache.abortActive()
	return nil
}

// SetArea validates area against the current video's shape and sets it. A
// no-op if area is unchanged.
func (e *Engine) SetArea(area model.Area) error {
	videoMeta, err := e.ReadVideoMeta()
	if err != nil {
		return err
	}
	if err := area.Validate(videoMeta.Shape.Height, videoMeta.Shape.Width); err != nil {
		return errs.Wrap(errs.InvalidParam, "invalid area", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.Area == area {
		return nil
	}
	e.setting.Area = area
	e.green2Cache.abortActive()
	e.peakCache.abortActive()
	e.interpCache.abortActive()
	e.solveCache.abortActive()
	return nil
}

// SetThermocouples validates against the current DAQ column count and
// sets the sparse thermocouple set. A no-op if the set is unchanged.
func (e *Engine) SetThermocouples(tcs []model.Thermocouple) error {
	daqMat, err := e.ReadDaq()
	if err != nil {
		return err
	}
	if err := daq.ValidateThermocouples(tcs, daqMat.NCols()); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if thermoFingerprint(e.setting.Thermocouples) == thermoFingerprint(tcs) {
		return nil
	}
	e.setting.Thermocouples = append([]model.Thermocouple(nil), tcs...)
	e.interpCache.abortActive()
	e.solveCache.abortActive()
	return nil
}

// SetFilterMethod validates and sets the temporal filter. nframes is
// needed to bound a median window; callers typically pass
// cal_num's current value. A no-op if the method is unchanged.
func (e *Engine) SetFilterMethod(m model.FilterMethod, nframes int) error {
	if err := m.Validate(nframes); err != nil {
		return errs.Wrap(errs.InvalidParam, "invalid filter method", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.hasFilter && e.setting.Filter == m {
		return nil
	}
	e.setting.hasFilter = true
	e.setting.Filter = m
	e.peakCache.abortActive()
	e.solveCache.abortActive()
	return nil
}

// SetInterpMethod validates against the current thermocouple count and
// sets the interpolation method. A no-op if the method is unchanged.
func (e *Engine) SetInterpMethod(m model.InterpMethod) error {
	e.mu.Lock()
	tcCount := len(e.setting.Thermocouples)
	e.mu.Unlock()
	if err := m.Validate(tcCount); err != nil {
		return errs.Wrap(errs.InvalidParam, "invalid interpolation method", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.hasInterp && e.setting.Interp == m {
		return nil
	}
	e.setting.hasInterp = true
	e.setting.Interp = m
	e.interpCache.abortActive()
	e.solveCache.abortActive()
	return nil
}

// SetIterMethod validates and sets the Newton iteration method. A no-op
// if the method is unchanged.
func (e *Engine) SetIterMethod(m model.IterMethod) error {
	if err := m.Validate(); err != nil {
		return errs.Wrap(errs.InvalidParam, "invalid iteration method", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.hasIter && e.setting.Iter == m {
		return nil
	}
	e.setting.hasIter = true
	e.setting.Iter = m
	e.solveCache.abortActive()
	return nil
}

// SetPhysicalParam validates and sets the physical constants. A no-op if
// the param set is unchanged.
func (e *Engine) SetPhysicalParam(p model.PhysicalParam) error {
	if err := p.Validate(); err != nil {
		return errs.Wrap(errs.InvalidParam, "invalid physical param", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setting.hasPhysical && e.setting.Physical == p {
		return nil
	}
	e.setting.hasPhysical = true
	e.setting.Physical = p
	e.solveCache.abortActive()
	return nil
}

// --- readers -------------------------------------------------------------

// snapshot returns the values every reader needs under one lock
// acquisition, so recomputation runs unlocked.
func (e *Engine) snapshot() Setting {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setting.clone()
}

// ReadVideoMeta returns the cached video metadata, reading and decoding
// the full packet sequence if the path's identity has changed since the
// last read.
func (e *Engine) ReadVideoMeta() (video.VideoMeta, error) {
	res, err := e.readVideo()
	return res.meta, err
}

func (e *Engine) readVideo() (videoResult, error) {
	s := e.snapshot()
	if s.VideoPath == "" {
		return videoResult{}, errs.New(errs.Unset, "video_path is not set")
	}
	e.mu.Lock()
	gen := e.videoGen
	e.mu.Unlock()
	key := videoKey{path: s.VideoPath, gen: gen}

	if v, err, ok := e.videoCache.get(key); ok {
		return v, err
	}
	prog := e.videoCache.begin(key)
	meta, store, err := video.Open(s.VideoPath, e.log, prog)
	res := videoResult{meta: meta, store: store}
	e.videoCache.publish(key, res, err)
	return res, err
}

// ReadDaq returns the cached DAQ matrix, invoking the collaborator's
// DaqLoader if the path's identity has changed since the last read.
func (e *Engine) ReadDaq() (*daq.Matrix, error) {
	s := e.snapshot()
	if s.DaqPath == "" {
		return nil, errs.New(errs.Unset, "daq_path is not set")
	}
	e.mu.Lock()
	gen := e.daqGen
	e.mu.Unlock()
	key := daqKey{path: s.DaqPath, gen: gen}

	if m, err, ok := e.daqCache.get(key); ok {
		return m, err
	}
	e.daqCache.begin(key)
	m, err := e.daqLoader(s.DaqPath)
	e.daqCache.publish(key, m, err)
	return m, err
}

// CalNum returns min(nframes-start_frame, nrows-start_row) for the
// current video/DAQ/start_index. This is a pure O(1) derivation and is
// not separately memoized.
func (e *Engine) CalNum() (int, error) {
	videoMeta, err := e.ReadVideoMeta()
	if err != nil {
		return 0, err
	}
	daqMat, err := e.ReadDaq()
	if err != nil {
		return 0, err
	}
	s := e.snapshot()
	if !s.hasStart {
		return 0, errs.New(errs.Unset, "start_index is not set")
	}
	return s.Start.CalNum(int(videoMeta.NFrames), daqMat.NRows()), nil
}

// ReadGreen2 returns the cached green2 matrix, rebuilding it if any of
// video_path, start_index, cal_num or area has changed.
func (e *Engine) ReadGreen2() (*green2.Matrix, error) {
	vres, err := e.readVideo()
	if err != nil {
		return nil, err
	}
	calNum, err := e.CalNum()
	if err != nil {
		return nil, err
	}
	s := e.snapshot()
	e.mu.Lock()
	vgen := e.videoGen
	e.mu.Unlock()
	key := green2Key{
		video:  videoKey{path: s.VideoPath, gen: vgen},
		start:  s.Start,
		calNum: calNum,
		area:   s.Area,
	}

	if g, err, ok := e.green2Cache.get(key); ok {
		return g, err
	}
	prog := e.green2Cache.begin(key)
	g, err := green2.Build(vres.store, e.decoderPool, s.Start.StartFrame, calNum, s.Area, e.pool.Size(), prog)
	e.green2Cache.publish(key, g, err)
	return g, err
}

// DetectPeak returns the cached per-pixel peak-frame indexes, rebuilding
// them if green2 or filter_method has changed.
func (e *Engine) DetectPeak() ([]int, error) {
	s := e.snapshot()
	if !s.hasFilter {
		return nil, errs.New(errs.Unset, "filter_method is not set")
	}
	g, err := e.ReadGreen2()
	if err != nil {
		return nil, err
	}
	gkey, err := e.currentGreen2Key()
	if err != nil {
		return nil, err
	}
	key := peakKey{green2: gkey, filter: s.Filter}

	if idx, err, ok := e.peakCache.get(key); ok {
		return idx, err
	}
	prog := e.peakCache.begin(key)
	idx, err := peak.Detect(g, s.Filter, e.pool.Size(), prog)
	e.peakCache.publish(key, idx, err)
	return idx, err
}

// MakeInterpolator returns the cached interpolator, rebuilding it if
// daq_path, start_index, cal_num, area, thermocouples or interp_method
// has changed.
func (e *Engine) MakeInterpolator() (*daq.Interpolator, error) {
	s := e.snapshot()
	if !s.hasInterp {
		return nil, errs.New(errs.Unset, "interp_method is not set")
	}
	daqMat, err := e.ReadDaq()
	if err != nil {
		return nil, err
	}
	calNum, err := e.CalNum()
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	dgen := e.daqGen
	e.mu.Unlock()
	key := interpKey{
		daq:               daqKey{path: s.DaqPath, gen: dgen},
		start:             s.Start,
		calNum:            calNum,
		area:              s.Area,
		thermoFingerprint: thermoFingerprint(s.Thermocouples),
		method:            s.Interp,
	}

	if it, err, ok := e.interpCache.get(key); ok {
		return it, err
	}
	// make_interpolator is not a cancellable computation; begin's
	// progress.Counter is unused here.
	e.interpCache.begin(key)
	it, err := daq.New(daqMat, s.Start, calNum, s.Area, s.Thermocouples, s.Interp)
	e.interpCache.publish(key, it, err)
	return it, err
}

// SolveNu returns the cached Nusselt-number field, resolving it if
// interpolator, peak indexes, physical_param, iter_method or the video's
// frame rate has changed.
func (e *Engine) SolveNu() (*solve.Nu2, error) {
	s := e.snapshot()
	if !s.hasPhysical {
		return nil, errs.New(errs.Unset, "physical_param is not set")
	}
	if !s.hasIter {
		return nil, errs.New(errs.Unset, "iter_method is not set")
	}
	it, err := e.MakeInterpolator()
	if err != nil {
		return nil, err
	}
	peakIdx, err := e.DetectPeak()
	if err != nil {
		return nil, err
	}
	videoMeta, err := e.ReadVideoMeta()
	if err != nil {
		return nil, err
	}
	ikey, err := e.currentInterpKey()
	if err != nil {
		return nil, err
	}
	pkey, err := e.currentPeakKey()
	if err != nil {
		return nil, err
	}
	key := solveKey{
		interp:    ikey,
		peak:      pkey,
		physical:  s.Physical,
		iter:      s.Iter,
		frameRate: videoMeta.FrameRate,
	}

	if nu2, err, ok := e.solveCache.get(key); ok {
		return nu2, err
	}
	prog := e.solveCache.begin(key)
	nu2, err := solve.Solve(it, peakIdx, s.Physical, s.Iter, videoMeta.FrameRate, e.pool.Size(), prog)
	e.solveCache.publish(key, nu2, err)
	return nu2, err
}

// currentGreen2Key, currentInterpKey and currentPeakKey recompute the key
// a fresh read would use, for readers one level downstream that need to
// address the same cache slot without rebuilding. They are cheap
// (no I/O) once the upstream node is already warm.
func (e *Engine) currentGreen2Key() (green2Key, error) {
	calNum, err := e.CalNum()
	if err != nil {
		return green2Key{}, err
	}
	s := e.snapshot()
	e.mu.Lock()
	vgen := e.videoGen
	e.mu.Unlock()
	return green2Key{
		video:  videoKey{path: s.VideoPath, gen: vgen},
		start:  s.Start,
		calNum: calNum,
		area:   s.Area,
	}, nil
}

func (e *Engine) currentPeakKey() (peakKey, error) {
	gkey, err := e.currentGreen2Key()
	if err != nil {
		return peakKey{}, err
	}
	s := e.snapshot()
	return peakKey{green2: gkey, filter: s.Filter}, nil
}

func (e *Engine) currentInterpKey() (interpKey, error) {
	calNum, err := e.CalNum()
	if err != nil {
		return interpKey{}, err
	}
	s := e.snapshot()
	e.mu.Lock()
	dgen := e.daqGen
	e.mu.Unlock()
	return interpKey{
		daq:               daqKey{path: s.DaqPath, gen: dgen},
		start:             s.Start,
		calNum:            calNum,
		area:              s.Area,
		thermoFingerprint: thermoFingerprint(s.Thermocouples),
		method:            s.Interp,
	}, nil
}
