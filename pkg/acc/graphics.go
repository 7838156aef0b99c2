/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package acc

import "sort"

// MaxCars is the capacity of the per-car arrays in the graphics page.
const MaxCars = 60

// Graphics mirrors SPageFileGraphic.
//
// The PadN fields are the alignment gaps the C compiler inserts after odd
// wchar_t arrays; they carry no data but must stay exported to be decoded.
type Graphics struct {
	PacketID                 int32
	Status                   Status
	Session                  SessionType
	CurrentTime              WString15
	LastTime                 WString15
	BestTime                 WString15
	Split                    WString15
	CompletedLaps            int32
	Position                 int32
	ICurrentTime             int32
	ILastTime                int32
	IBestTime                int32
	SessionTimeLeft          float32
	DistanceTraveled         float32
	IsInPit                  int32
	CurrentSectorIndex       int32
	LastSectorTime           int32
	NumberOfLaps             int32
	TyreCompound             WString33
	Pad1                     []byte `struc:"[2]pad"`
	ReplayTimeMultiplier     float32
	NormalizedCarPosition    float32
	ActiveCars               int32
	CarCoordinates           [MaxCars]Vec3
	CarID                    [MaxCars]int32
	PlayerCarID              int32
	PenaltyTime              float32
	Flag                     Flag
	Penalty                  Penalty
	IdealLineOn              int32
	IsInPitLane              int32
	SurfaceGrip              float32
	MandatoryPitDone         int32
	WindSpeed                float32
	WindDirection            float32
	IsSetupMenuVisible       int32
	MainDisplayIndex         int32
	SecondaryDisplayIndex    int32
	TC                       int32
	TCCut                    int32
	EngineMap                int32
	ABS                      int32
	FuelXLap                 float32
	RainLights               int32
	FlashingLights           int32
	LightsStage              int32
	ExhaustTemperature       float32
	WiperLV                  int32
	DriverStintTotalTimeLeft int32
	DriverStintTimeLeft      int32
	RainTyres                int32
	SessionIndex             int32
	UsedFuel                 float32
	DeltaLapTime             WString15
	Pad2                     []byte `struc:"[2]pad"`
	IDeltaLapTime            int32
	EstimatedLapTime         WString15
	Pad3                     []byte `struc:"[2]pad"`
	IEstimatedLapTime        int32
	IsDeltaPositive          int32
	ISplit                   int32
	IsValidLap               int32
	FuelEstimatedLaps        float32
	TrackStatus              WString33
	Pad4                     []byte `struc:"[2]pad"`
	MissingMandatoryPits     int32
	Clock                    float32
	DirectionLightsLeft      int32
	DirectionLightsRight     int32
	GlobalYellow             int32
	GlobalYellow1            int32
	GlobalYellow2            int32
	GlobalYellow3            int32
	GlobalWhite              int32
	GlobalGreen              int32
	GlobalChequered          int32
	GlobalRed                int32
	MfdTyreSet               int32
	MfdFuelToAdd             float32
	MfdTyrePressureLF        float32
	MfdTyrePressureRF        float32
	MfdTyrePressureLR        float32
	MfdTyrePressureRR        float32
	TrackGripStatus          TrackGripStatus
	RainIntensity            RainIntensity
	RainIntensityIn10min     RainIntensity
	RainIntensityIn30min     RainIntensity
	CurrentTyreSet           int32
	StrategyTyreSet          int32
	GapAhead                 int32
	GapBehind                int32
}

// Fields returns the graphics values keyed by the names telemetry scripts use.
// "penalty" and "flag" are always present.
func (g *Graphics) Fields() map[string]interface{} {
	return map[string]interface{}{
		"packetID":                 g.PacketID,
		"STATUS":                   g.Status,
		"session":                  g.Session,
		"completed laps":           g.CompletedLaps,
		"position":                 g.Position,
		"currentTime":              g.CurrentTime.String(),
		"iCurrentTime":             g.ICurrentTime,
		"lastTime":                 g.LastTime.String(),
		"iLastTime":                g.ILastTime,
		"bestTime":                 g.BestTime.String(),
		"iBestTime":                g.IBestTime,
		"split":                    g.Split.String(),
		"sessionTimeLeft":          g.SessionTimeLeft,
		"distanceTraveled":         g.DistanceTraveled,
		"isInPit":                  g.IsInPit,
		"currentSectorIndex":       g.CurrentSectorIndex,
		"lastSectorTime":           g.LastSectorTime,
		"numberOfLaps":             g.NumberOfLaps,
		"tyreCompound":             g.TyreCompound.String(),
		"normalizedCarPosition":    g.NormalizedCarPosition,
		"carCoordinates":           g.ActiveCarCoordinates(),
		"activeCars":               g.ActiveCars,
		"isInPitLane":              g.IsInPitLane,
		"penaltyTime":              g.PenaltyTime,
		"idealLineOn":              g.IdealLineOn,
		"carID":                    g.ActiveCarIDs(),
		"playerCarID":              g.PlayerCarID,
		"surfaceGrip":              g.SurfaceGrip,
		"mandatoryPitDone":         g.MandatoryPitDone,
		"windSpeed":                g.WindSpeed,
		"windDirection":            g.WindDirection,
		"isSetupMenuVisible":       g.IsSetupMenuVisible,
		"mainDisplayIndex":         g.MainDisplayIndex,
		"secondaryDisplayIndex":    g.SecondaryDisplayIndex,
		"TC":                       g.TC,
		"TCCut":                    g.TCCut,
		"EngineMap":                g.EngineMap,
		"ABS":                      g.ABS,
		"fuelXLap":                 g.FuelXLap,
		"rainLights":               g.RainLights,
		"flashingLights":           g.FlashingLights,
		"lightsStage":              g.LightsStage,
		"exhaustTemperature":       g.ExhaustTemperature,
		"wiperLV":                  g.WiperLV,
		"DriverStintTotalTimeLeft": g.DriverStintTotalTimeLeft,
		"DriverStintTimeLeft":      g.DriverStintTimeLeft,
		"rainTyres":                g.RainTyres,
		"sessionIndex":             g.SessionIndex,
		"usedFuel":                 g.UsedFuel,
		"deltaLapTime":             g.DeltaLapTime.String(),
		"iDeltaLapTime":            g.IDeltaLapTime,
		"estimatedLapTime":         g.EstimatedLapTime.String(),
		"iEstimatedLapTime":        g.IEstimatedLapTime,
		"isDeltaPositive":          g.IsDeltaPositive,
		"iSplit":                   g.ISplit,
		"isValidLap":               g.IsValidLap,
		"fuelEstimatedLaps":        g.FuelEstimatedLaps,
		"trackStatus":              g.TrackStatus.String(),
		"missingMandatoryPits":     g.MissingMandatoryPits,
		"Clock":                    g.Clock,
		"directionLightsLeft":      g.DirectionLightsLeft,
		"directionLightsRight":     g.DirectionLightsRight,
		"GlobalYellow":             g.GlobalYellow,
		"GlobalYellow1":            g.GlobalYellow1,
		"GlobalYellow2":            g.GlobalYellow2,
		"GlobalYellow3":            g.GlobalYellow3,
		"GlobalWhite":              g.GlobalWhite,
		"GlobalGreen":              g.GlobalGreen,
		"GlobalChequered":          g.GlobalChequered,
		"GlobalRed":                g.GlobalRed,
		"mfdTyreSet":               g.MfdTyreSet,
		"mfdFuelToAdd":             g.MfdFuelToAdd,
		"mfdTyrePressureLF":        g.MfdTyrePressureLF,
		"mfdTyrePressureRF":        g.MfdTyrePressureRF,
		"mfdTyrePressureLR":        g.MfdTyrePressureLR,
		"mfdTyrePressureRR":        g.MfdTyrePressureRR,
		"trackGripStatus":          g.TrackGripStatus,
		"rainIntensity":            g.RainIntensity,
		"rainIntensityIn10min":     g.RainIntensityIn10min,
		"rainIntensityIn30min":     g.RainIntensityIn30min,
		"currentTyreSet":           g.CurrentTyreSet,
		"strategyTyreSet":          g.StrategyTyreSet,
		"gapAhead":                 g.GapAhead,
		"gapBehind":                g.GapBehind,
		"flag":                     g.Flag,
		"penalty":                  g.Penalty,
	}
}

// Field returns a single value from Fields.
func (g *Graphics) Field(name string) (interface{}, bool) {
	switch name {
	case "penalty":
		return g.Penalty, true
	case "flag":
		return g.Flag, true
	}
	v, ok := g.Fields()[name]
	return v, ok
}

// ActiveCarCoordinates returns the coordinates of the first ActiveCars cars.
func (g *Graphics) ActiveCarCoordinates() []Vec3 {
	return g.CarCoordinates[:g.activeCars()]
}

// ActiveCarIDs returns the ids of the first ActiveCars cars.
func (g *Graphics) ActiveCarIDs() []int32 {
	return g.CarID[:g.activeCars()]
}

func (g *Graphics) activeCars() int {
	n := int(g.ActiveCars)
	if n < 0 {
		return 0
	}
	if n > MaxCars {
		return MaxCars
	}
	return n
}

var graphicsFieldNames = func() []string {
	names := make([]string, 0, 96)
	for name := range (&Graphics{}).Fields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// GraphicsFieldNames lists the keys of Graphics.Fields in sorted order.
func GraphicsFieldNames() []string {
	out := make([]string, len(graphicsFieldNames))
	copy(out, graphicsFieldNames)
	return out
}

// IsGraphicsField reports whether name is a key of Graphics.Fields.
func IsGraphicsField(name string) bool {
	i := sort.SearchStrings(graphicsFieldNames, name)
	return i < len(graphicsFieldNames) && graphicsFieldNames[i] == name
}
