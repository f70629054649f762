/*
DESCRIPTION
  watcher.go provides Watcher, which follows video_path/daq_path on disk
  and bumps the corresponding generation counter when the file's content
  changes without the path itself changing (e.g. an external tool
  re-exports the same file in place). A path's identity key folds in this
  generation counter (keys.go), so the next read recomputes instead of
  serving a stale memoized result, and any read already in flight against
  the old generation is aborted promptly.

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
	"github.com/ausocean/utils/logging"
	"github.com/fsnotify/fsnotify"
)

// Watcher tracks the engine's current video_path/daq_path on disk and
// invalidates the engine's identity keys when either file's content
// changes in place.
type Watcher struct {
	engine *Engine
	log    logging.Logger

	fsw        *fsnotify.Watcher
	watchVideo string
	watchDaq   string

	done chan struct{}
}

// NewWatcher starts watching e's current video_path/daq_path (if set). It
// does not follow later path changes by itself; Resync re-points it. Call
// Stop to release the underlying inotify/kqueue handle.
func NewWatcher(e *Engine, log logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{engine: e, log: log, fsw: fsw, done: make(chan struct{})}

	s := e.Setting()
	w.rewatch(s.VideoPath, s.DaqPath)

	go w.run()
	return w, nil
}

// Resync re-points the watcher at the engine's current video_path/
// daq_path. Call this after SetVideoPath/SetDaqPath so the watcher tracks
// the new file instead of the old one.
func (w *Watcher) Resync() {
	s := w.engine.Setting()
	w.rewatch(s.VideoPath, s.DaqPath)
}

func (w *Watcher) rewatch(videoPath, daqPath string) {
	if w.watchVideo != "" && w.watchVideo != videoPath {
		w.fsw.Remove(w.watchVideo)
	}
	if videoPath != "" && videoPath != w.watchVideo {
		if err := w.fsw.Add(videoPath); err != nil && w.log != nil {
			w.log.Log(logging.Warning, "could not watch video_path", "path", videoPath, "error", err)
		}
	}
	w.watchVideo = videoPath

	if w.watchDaq != "" && w.watchDaq != daqPath {
		w.fsw.Remove(w.watchDaq)
	}
	if daqPath != "" && daqPath != w.watchDaq {
		if err := w.fsw.Add(daqPath); err != nil && w.log != nil {
			w.log.Log(logging.Warning, "could not watch daq_path", "path", daqPath, "error", err)
		}
	}
	w.watchDaq = daqPath
}

// run dispatches fsnotify events to the engine's generation counters
// until Stop is called.
func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.engine.mu.Lock()
			switch ev.Name {
			case w.watchVideo:
				w.engine.videoGen++
				w.engine.videoCache.abortActive()
				w.engine.green2Cache.abortActive()
				w.engine.peakCache.abortActive()
				w.engine.solveCache.abortActive()
			case w.watchDaq:
				w.engine.daqGen++
				w.engine.daqCache.abortActive()
				w.engine.interpCache.abortActive()
				w.engine.solveCache.abortActive()
			}
			w.engine.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.log != nil {
				w.log.Log(logging.Warning, "watcher error", "error", err)
			}
		}
	}
}

// Stop releases the underlying OS watch handle.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}
