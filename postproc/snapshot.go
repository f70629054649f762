/*
DESCRIPTION
  snapshot.go defines Snapshot, the settings-plus-result shape a JSON
  writer would serialize. This module never marshals or writes it; the
  struct exists so a collaborator's JSON writer has the right shape to
  serialize.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package postproc

import (
	"time"

	"github.com/starpact/tlc-core/model"
	"github.com/starpact/tlc-core/video"
)

// DaqMeta is the {nrows, ncols} summary of a loaded DAQ matrix.
type DaqMeta struct {
	NRows int `json:"nrows"`
	NCols int `json:"ncols"`
}

// ThermocoupleView is the {column_index, position} shape of a
// thermocouple's JSON entry.
type ThermocoupleView struct {
	ColumnIndex int            `json:"column_index"`
	Position    model.Position `json:"position"`
}

// Snapshot is the settings-plus-result snapshot.
type Snapshot struct {
	Name         string               `json:"name"`
	SaveRootDir  string               `json:"save_root_dir"`
	VideoPath    string               `json:"video_path"`
	VideoMeta    video.VideoMeta      `json:"video_meta"`
	DaqPath      string               `json:"daq_path"`
	DaqMeta      DaqMeta              `json:"daq_meta"`
	StartFrame   int                  `json:"start_frame"`
	StartRow     int                  `json:"start_row"`
	Area         model.Area           `json:"area"`
	Thermocouples []ThermocoupleView  `json:"thermocouples"`
	FilterMethod model.FilterMethod   `json:"filter_method"`
	InterpMethod model.InterpMethod   `json:"interp_method"`
	IterMethod   model.IterMethod     `json:"iter_method"`
	Physical     model.PhysicalParam  `json:"physical_param"`
	NuNaNMean    float64              `json:"nu_nan_mean"`
	SavedAt      time.Time            `json:"saved_at"` // RFC3339
}

// NewThermocoupleViews projects Thermocouples into their JSON shape.
func NewThermocoupleViews(tcs []model.Thermocouple) []ThermocoupleView {
	out := make([]ThermocoupleView, len(tcs))
	for i, tc := range tcs {
		out[i] = ThermocoupleView{ColumnIndex: tc.ColumnIndex, Position: tc.Position}
	}
	return out
}
