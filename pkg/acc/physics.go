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

// Vec3 is a float[3] triple.
type Vec3 struct {
	X, Y, Z float32
}

// Physics mirrors SPageFilePhysics. Wheel arrays are ordered FL, FR, RL, RR.
type Physics struct {
	PacketID            int32
	Gas                 float32
	Brake               float32
	Fuel                float32
	Gear                int32
	RPM                 int32
	SteerAngle          float32
	SpeedKmh            float32
	Velocity            [3]float32
	AccG                [3]float32
	WheelSlip           [4]float32
	WheelLoad           [4]float32
	WheelPressure       [4]float32
	WheelAngularSpeed   [4]float32
	TyreWear            [4]float32
	TyreDirtyLevel      [4]float32
	TyreCoreTemperature [4]float32
	CamberRad           [4]float32
	SuspensionTravel    [4]float32
	DRS                 float32
	TC                  float32
	Heading             float32
	Pitch               float32
	Roll                float32
	CGHeight            float32
	CarDamage           [5]float32
	NumberOfTyresOut    int32
	PitLimiterOn        int32
	ABS                 float32
	KersCharge          float32
	KersInput           float32
	AutoShifterOn       int32
	RideHeight          [2]float32
	TurboBoost          float32
	Ballast             float32
	AirDensity          float32
	AirTemp             float32
	RoadTemp            float32
	LocalAngularVel     [3]float32
	FinalFF             float32
	PerformanceMeter    float32
	EngineBrake         int32
	ErsRecoveryLevel    int32
	ErsPowerLevel       int32
	ErsHeatCharging     int32
	ErsIsCharging       int32
	KersCurrentKJ       float32
	DRSAvailable        int32
	DRSEnabled          int32
	BrakeTemp           [4]float32
	Clutch              float32
	TyreTempI           [4]float32
	TyreTempM           [4]float32
	TyreTempO           [4]float32
	IsAIControlled      int32
	TyreContactPoint    [4]Vec3
	TyreContactNormal   [4]Vec3
	TyreContactHeading  [4]Vec3
	BrakeBias           float32
	LocalVelocity       [3]float32
	P2PActivations      int32
	P2PStatus           int32
	CurrentMaxRPM       int32
	Mz                  [4]float32
	Fx                  [4]float32
	Fy                  [4]float32
	SlipRatio           [4]float32
	SlipAngle           [4]float32
	TCInAction          int32
	ABSInAction         int32
	SuspensionDamage    [4]float32
	TyreTemp            [4]float32
	WaterTemp           float32
	BrakePressure       [4]float32
	FrontBrakeCompound  int32
	RearBrakeCompound   int32
	PadLife             [4]float32
	DiscLife            [4]float32
	IgnitionOn          int32
	StarterEngineOn     int32
	IsEngineRunning     int32
	KerbVibration       float32
	SlipVibrations      float32
	GVibrations         float32
	ABSVibrations       float32
}

// Fields returns the physics values keyed by the names telemetry scripts use.
func (p *Physics) Fields() map[string]interface{} {
	return map[string]interface{}{
		"packetID":            p.PacketID,
		"gas":                 p.Gas,
		"brake":               p.Brake,
		"camber rad":          p.CamberRad,
		"damage":              p.CarDamage,
		"car height":          p.CGHeight,
		"drs":                 p.DRS,
		"tc":                  p.TC,
		"fuel":                p.Fuel,
		"gear":                p.Gear,
		"number of tyres out": p.NumberOfTyresOut,
		"packet id":           p.PacketID,
		"heading":             p.Heading,
		"pitch":               p.Pitch,
		"roll":                p.Roll,
		"rpms":                p.RPM,
		"speed kmh":           p.SpeedKmh,
		"contactPoint":        p.TyreContactPoint,
		"contactNormal":       p.TyreContactNormal,
		"contactHeading":      p.TyreContactHeading,
		"brakeBias":           p.BrakeBias,
		"localVelocity":       p.LocalVelocity,
		"slipRatio":           p.SlipRatio,
		"slipAngle":           p.SlipAngle,
		"steer":               p.SteerAngle,
		"suspensionTravel":    p.SuspensionTravel,
		"tyreCoreTemp":        p.TyreCoreTemperature,
		"tyreDirtyLevel":      p.TyreDirtyLevel,
		"tyreWear":            p.TyreWear,
		"velocity":            p.Velocity,
		"accG":                p.AccG,
		"wheelAngularSpeed":   p.WheelAngularSpeed,
		"wheelLoad":           p.WheelLoad,
		"wheelSlip":           p.WheelSlip,
		"wheelPressure":       p.WheelPressure,
		"waterTemp":           p.WaterTemp,
		"brakePressure":       p.BrakePressure,
		"frontBrakeCompound":  p.FrontBrakeCompound,
		"rearBrakeCompound":   p.RearBrakeCompound,
		"padLife":             p.PadLife,
		"discLife":            p.DiscLife,
		"ignitionOn":          p.IgnitionOn,
		"starterEngineOn":     p.StarterEngineOn,
		"isEngineRunning":     p.IsEngineRunning,
		"kerbVibration":       p.KerbVibration,
		"slipVibrations":      p.SlipVibrations,
		"gVibrations":         p.GVibrations,
		"absVibrations":       p.ABSVibrations,
		"isAIControlled":      p.IsAIControlled,
		"brakeTemp":           p.BrakeTemp,
		"clutch":              p.Clutch,
		"pitLimiterOn":        p.PitLimiterOn,
		"abs":                 p.ABS,
		"autoShifterOn":       p.AutoShifterOn,
		"turboBoost":          p.TurboBoost,
		"airTemp":             p.AirTemp,
		"roadTemp":            p.RoadTemp,
		"localAngularVel":     p.LocalAngularVel,
		"finalFF":             p.FinalFF,
		"tcInAction":          p.TCInAction,
		"absInAction":         p.ABSInAction,
		"suspensionDamage":    p.SuspensionDamage,
		"tyreTemp":            p.TyreTemp,
		"currentMaxRpm":       p.CurrentMaxRPM,
		"performanceMeter":    p.PerformanceMeter,
		"rideHeight":          p.RideHeight,
	}
}

// Field returns a single value from Fields.
func (p *Physics) Field(name string) (interface{}, bool) {
	v, ok := p.Fields()[name]
	return v, ok
}
