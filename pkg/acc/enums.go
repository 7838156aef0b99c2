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

import "strconv"

// Status is the simulator run state (AC_STATUS).
type Status int32

const (
	StatusOff Status = iota
	StatusReplay
	StatusLive
	StatusPause
)

var statusNames = []string{"Off", "Replay", "Live", "Pause"}

func (s Status) String() string {
	return enumName(statusNames, int32(s), "Status")
}

// SessionType is the kind of the running session (AC_SESSION_TYPE).
type SessionType int32

const (
	SessionUnknown SessionType = iota - 1
	SessionPractice
	SessionQualify
	SessionRace
	SessionHotlap
	SessionTimeAttack
	SessionDrift
	SessionDrag
	SessionHotstint
	SessionHotlapSuperpole
)

var sessionNames = []string{
	"Practice", "Qualify", "Race", "Hotlap", "TimeAttack",
	"Drift", "Drag", "Hotstint", "HotlapSuperpole",
}

func (s SessionType) String() string {
	if s == SessionUnknown {
		return "Unknown"
	}
	return enumName(sessionNames, int32(s), "SessionType")
}

// Flag is the flag currently shown to the player (AC_FLAG_TYPE).
type Flag int32

const (
	FlagNone Flag = iota
	FlagBlue
	FlagYellow
	FlagBlack
	FlagWhite
	FlagCheckered
	FlagPenalty
	FlagGreen
	FlagOrange
)

var flagNames = []string{
	"None", "Blue", "Yellow", "Black", "White",
	"Checkered", "Penalty", "Green", "Orange",
}

func (f Flag) String() string {
	return enumName(flagNames, int32(f), "Flag")
}

// Penalty is the penalty pending for the player (PenaltyShortcut).
type Penalty int32

const (
	PenaltyNone Penalty = iota
	PenaltyDriveThroughCutting
	PenaltyStopAndGo10Cutting
	PenaltyStopAndGo20Cutting
	PenaltyStopAndGo30Cutting
	PenaltyDisqualifiedCutting
	PenaltyRemoveBestLaptimeCutting
	PenaltyDriveThroughPitSpeeding
	PenaltyStopAndGo10PitSpeeding
	PenaltyStopAndGo20PitSpeeding
	PenaltyStopAndGo30PitSpeeding
	PenaltyDisqualifiedPitSpeeding
	PenaltyRemoveBestLaptimePitSpeeding
	PenaltyDisqualifiedIgnoredMandatoryPit
	PenaltyPostRaceTime
	PenaltyDisqualifiedTrolling
	PenaltyDisqualifiedPitEntry
	PenaltyDisqualifiedPitExit
	PenaltyDisqualifiedWrongWay
	PenaltyDriveThroughIgnoredDriverStint
	PenaltyDisqualifiedIgnoredDriverStint
	PenaltyDisqualifiedExceededDriverStintLimit
)

// names as the simulator spells them
var penaltyNames = []string{
	"None",
	"DriveThrough_Cutting",
	"StopAndGo_10_Cutting",
	"StopAndGo_20_Cutting",
	"StopAndGo_30_Cutting",
	"Disqualified_Cutting",
	"RemoveBestLaptime_Cutting",
	"DriveThrough_PitSpeeding",
	"StopAndGo_10_PitSpeeding",
	"StopAndGo_20_PitSpeeding",
	"StopAndGo_30_PitSpeeding",
	"Disqualified_PitSpeeding",
	"RemoveBestLaptime_PitSpeeding",
	"Disqualified_IgnoredMandatoryPit",
	"PostRaceTime",
	"Disqualified_Trolling",
	"Disqualified_PitEntry",
	"Disqualified_PitExit",
	"Disqualified_WrongWay",
	"DriveThrough_IgnoredDriverStint",
	"Disqualified_IgnoredDriverStint",
	"Disqualified_ExceededDriverStintLimit",
}

func (p Penalty) String() string {
	return enumName(penaltyNames, int32(p), "Penalty")
}

// TrackGripStatus is the grip level reported for the track surface.
type TrackGripStatus int32

const (
	GripGreen TrackGripStatus = iota
	GripFast
	GripOptimum
	GripGreasy
	GripDamp
	GripWet
	GripFlooded
)

var gripNames = []string{"Green", "Fast", "Optimum", "Greasy", "Damp", "Wet", "Flooded"}

func (g TrackGripStatus) String() string {
	return enumName(gripNames, int32(g), "TrackGripStatus")
}

// RainIntensity is the current or forecast rain level.
type RainIntensity int32

const (
	RainNone RainIntensity = iota
	RainDrizzle
	RainLight
	RainMedium
	RainHeavy
	RainThunderstorm
)

var rainNames = []string{"NoRain", "Drizzle", "LightRain", "MediumRain", "HeavyRain", "Thunderstorm"}

func (r RainIntensity) String() string {
	return enumName(rainNames, int32(r), "RainIntensity")
}

func enumName(names []string, v int32, typ string) string {
	if v >= 0 && int(v) < len(names) {
		return names[v]
	}
	return typ + "(" + strconv.Itoa(int(v)) + ")"
}
