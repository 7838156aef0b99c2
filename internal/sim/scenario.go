package sim

import (
	"context"
	"time"

	"github.com/srediag/acc-telemetry/pkg/acc"
)

var (
	flagCycle = []acc.Flag{
		acc.FlagGreen, acc.FlagNone, acc.FlagYellow, acc.FlagNone,
		acc.FlagBlue, acc.FlagNone, acc.FlagWhite, acc.FlagCheckered,
	}
	penaltyCycle = []acc.Penalty{
		acc.PenaltyNone, acc.PenaltyNone, acc.PenaltyDriveThroughCutting, acc.PenaltyNone,
		acc.PenaltyStopAndGo10PitSpeeding, acc.PenaltyNone, acc.PenaltyNone, acc.PenaltyNone,
	}
)

// Session returns the static page of the synthetic session.
func Session() *acc.Static {
	return &acc.Static{
		SMVersion:          acc.NewWString15("1.9"),
		ACVersion:          acc.NewWString15("1.9"),
		NumberOfSessions:   1,
		NumCars:            1,
		CarModel:           acc.NewWString33("porsche_991ii_gt3_r"),
		Track:              acc.NewWString33("monza"),
		PlayerName:         acc.NewWString33("Sim"),
		PlayerSurname:      acc.NewWString33("Driver"),
		PlayerNick:         acc.NewWString33("SIM"),
		SectorCount:        3,
		MaxRPM:             9250,
		MaxFuel:            120,
		PenaltiesEnabled:   1,
		TrackSplineLength:  5793,
		TrackConfiguration: acc.NewWString33("monza"),
		DryTyresName:       acc.NewWString33("DHE"),
		WetTyresName:       acc.NewWString33("WH"),
	}
}

// Frame returns the physics and graphics pages of step n. Flag and penalty
// cycle through a fixed sequence so every value repeats.
func Frame(n int) (*acc.Physics, *acc.Graphics) {
	i := n % len(flagCycle)
	ph := &acc.Physics{
		Gas:      0.8,
		Fuel:     60 - float32(n%60),
		Gear:     4,
		RPM:      7200,
		SpeedKmh: 212.5,
	}
	g := &acc.Graphics{
		Status:          acc.StatusLive,
		Session:         acc.SessionRace,
		CompletedLaps:   int32(n / len(flagCycle)),
		Position:        1,
		ActiveCars:      1,
		PlayerCarID:     1001,
		Flag:            flagCycle[i],
		Penalty:         penaltyCycle[i],
		TrackGripStatus: acc.GripOptimum,
		TyreCompound:    acc.NewWString33("dry_compound"),
	}
	g.CarID[0] = 1001
	return ph, g
}

// Run publishes a frame every interval until ctx is done.
func Run(ctx context.Context, p *Publisher, interval time.Duration) error {
	st := Session()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 0; ; n++ {
		ph, g := Frame(n)
		if err := p.Publish(ph, g, st); err != nil {
			return err
		}
		p.log.Debugf("frame %d flag=%s penalty=%s", n, g.Flag, g.Penalty)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
