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

// Static mirrors SPageFileStatic. The simulator writes it once per session.
type Static struct {
	SMVersion                WString15
	ACVersion                WString15
	NumberOfSessions         int32
	NumCars                  int32
	CarModel                 WString33
	Track                    WString33
	PlayerName               WString33
	PlayerSurname            WString33
	PlayerNick               WString33
	Pad1                     []byte `struc:"[2]pad"`
	SectorCount              int32
	MaxTorque                float32
	MaxPower                 float32
	MaxRPM                   int32
	MaxFuel                  float32
	SuspensionMaxTravel      [4]float32
	TyreRadius               [4]float32
	MaxTurboBoost            float32
	Deprecated1              float32
	Deprecated2              float32
	PenaltiesEnabled         int32
	AidFuelRate              float32
	AidTireRate              float32
	AidMechanicalDamage      float32
	AidAllowTyreBlankets     float32
	AidStability             float32
	AidAutoClutch            int32
	AidAutoBlip              int32
	HasDRS                   int32
	HasERS                   int32
	HasKERS                  int32
	KersMaxJ                 float32
	EngineBrakeSettingsCount int32
	ErsPowerControllerCount  int32
	TrackSplineLength        float32
	TrackConfiguration       WString33
	Pad2                     []byte `struc:"[2]pad"`
	ErsMaxJ                  float32
	IsTimedRace              int32
	HasExtraLap              int32
	CarSkin                  WString33
	Pad3                     []byte `struc:"[2]pad"`
	ReversedGridPositions    int32
	PitWindowStart           int32
	PitWindowEnd             int32
	IsOnline                 int32
	DryTyresName             WString33
	WetTyresName             WString33
}

// Fields returns the static values keyed by the names telemetry scripts use.
func (s *Static) Fields() map[string]interface{} {
	return map[string]interface{}{
		"smVersion":            s.SMVersion.String(),
		"acVersion":            s.ACVersion.String(),
		"numberOfSessions":     s.NumberOfSessions,
		"numCars":              s.NumCars,
		"carModel":             s.CarModel.String(),
		"track":                s.Track.String(),
		"playerName":           s.PlayerName.String(),
		"playerSurname":        s.PlayerSurname.String(),
		"playerNick":           s.PlayerNick.String(),
		"sectorCount":          s.SectorCount,
		"maxRpm":               s.MaxRPM,
		"maxFuel":              s.MaxFuel,
		"penaltiesEnabled":     s.PenaltiesEnabled,
		"aidFuelRate":          s.AidFuelRate,
		"aidTireRate":          s.AidTireRate,
		"aidMechanicalDamage":  s.AidMechanicalDamage,
		"aidAllowTyreBlankets": s.AidAllowTyreBlankets,
		"aidStability":         s.AidStability,
		"aidAutoClutch":        s.AidAutoClutch,
		"aidAutoBlip":          s.AidAutoBlip,
		"PitWindowStart":       s.PitWindowStart,
		"PitWindowEnd":         s.PitWindowEnd,
		"isOnline":             s.IsOnline,
		"dryTyresName":         s.DryTyresName.String(),
		"wetTyresName":         s.WetTyresName.String(),
	}
}

// Field returns a single value from Fields.
func (s *Static) Field(name string) (interface{}, bool) {
	v, ok := s.Fields()[name]
	return v, ok
}
