package models

import (
	"errors"
	"strconv"
	"strings"
)

// ComputePool is a unit of managed query execution capacity.
type ComputePool struct {
	BaseResource
	Size          string
	IntendedState string
	ActualState   string
	MinUnits      int
	MaxUnits      int
}

func ComputePoolFromRow(row Row) ComputePool {
	return ComputePool{
		BaseResource:  baseFromRow(row),
		Size:          row.Field("size"),
		IntendedState: row.Field("intended_state"),
		ActualState:   row.Field("actual_state", "state", "status"),
		MinUnits:      row.FieldInt("min_units"),
		MaxUnits:      row.FieldInt("max_units"),
	}
}

type ComputePoolCreateParams struct {
	Name               string
	Size               string
	MinUnits           int
	MaxUnits           int
	AutoSuspend        *bool
	AutoSuspendMinutes int
	Comment            string
}

func (p ComputePoolCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("compute pool name is required")
	}
	if p.Size == "" {
		return errors.New("compute pool size is required")
	}
	if p.MinUnits < 0 || p.MaxUnits < 0 {
		return errors.New("unit counts must not be negative")
	}
	if p.MaxUnits > 0 && p.MinUnits > p.MaxUnits {
		return errors.New("min units must not exceed max units")
	}
	return nil
}

func (p ComputePoolCreateParams) WithClause() WithClause {
	var w WithClause
	w.Set("size", p.Size)
	if p.MinUnits > 0 {
		w.Set("min.units", strconv.Itoa(p.MinUnits))
	}
	if p.MaxUnits > 0 {
		w.Set("max.units", strconv.Itoa(p.MaxUnits))
	}
	if p.AutoSuspend != nil {
		w.Set("auto.suspend", strings.ToLower(strconv.FormatBool(*p.AutoSuspend)))
	}
	if p.AutoSuspendMinutes > 0 {
		w.Set("auto.suspend.minutes", strconv.Itoa(p.AutoSuspendMinutes))
	}
	return w
}

type ComputePoolUpdateParams struct {
	Size               *string
	MinUnits           *int
	MaxUnits           *int
	AutoSuspendMinutes *int
}

func (p ComputePoolUpdateParams) Validate() error {
	if p.Size == nil && p.MinUnits == nil && p.MaxUnits == nil && p.AutoSuspendMinutes == nil {
		return errors.New("update requires at least one field")
	}
	return nil
}

func (p ComputePoolUpdateParams) WithClause() WithClause {
	var w WithClause
	if p.Size != nil {
		w.Set("size", *p.Size)
	}
	if p.MinUnits != nil {
		w.Set("min.units", strconv.Itoa(*p.MinUnits))
	}
	if p.MaxUnits != nil {
		w.Set("max.units", strconv.Itoa(*p.MaxUnits))
	}
	if p.AutoSuspendMinutes != nil {
		w.Set("auto.suspend.minutes", strconv.Itoa(*p.AutoSuspendMinutes))
	}
	return w
}
