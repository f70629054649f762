/*
DESCRIPTION
  setting.go holds Setting, the flat struct of every leaf value a caller
  can mutate through Engine, modeled on revid/config.Config's convention of
  one flat struct of plain fields rather than a nested options tree.
  Setting itself is a snapshot; Engine owns the authoritative copy plus the
  generation counters and memoization caches layered on top of it.

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

import "github.com/starpact/tlc-core/model"

// Setting is the full set of leaves a caller can mutate. Several fields
// have a zero value that collides with a legitimate
// variant (StartIndex{0,0} is a valid start, FilterMethod{} is the valid
// "No" filter), so presence is tracked separately by the has* flags rather
// than by a sentinel value.
type Setting struct {
	Name        string
	SaveRootDir string

	VideoPath string
	DaqPath   string

	hasStart bool
	Start    model.StartIndex

	Area model.Area

	Thermocouples []model.Thermocouple

	hasFilter bool
	Filter    model.FilterMethod

	hasInterp bool
	Interp    model.InterpMethod

	hasIter bool
	Iter    model.IterMethod

	hasPhysical bool
	Physical    model.PhysicalParam
}

// clone returns a deep-enough copy of s: Thermocouples is the only
// reference field, so it alone needs a fresh backing array.
func (s Setting) clone() Setting {
	if s.Thermocouples != nil {
		s.Thermocouples = append([]model.Thermocouple(nil), s.Thermocouples...)
	}
	return s
}
