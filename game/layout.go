package game

// Band is a horizontal strip of the world.
type Band struct {
	Y, Height float64
}

func (b Band) Top() float64 { return b.Y + b.Height }

// RoadLayout describes where roads, lanes and the goal strip sit.
// Every road carries two lanes; lane 2i is the lower lane of road i.
type RoadLayout struct {
	Roads []Band
	Lanes []Band
	Goal  Band
	Start Band
}

// NewRoadLayout stacks cfg.World.Roads roads upward from the bottom margin,
// separated by verges.
func NewRoadLayout(cfg Config) RoadLayout {
	w := cfg.World
	layout := RoadLayout{
		Roads: make([]Band, 0, w.Roads),
		Lanes: make([]Band, 0, 2*w.Roads),
	}

	laneHeight := w.RoadHeight / 2
	for i := range w.Roads {
		y := w.BottomMargin + float64(i)*(w.RoadHeight+w.VergeHeight)
		layout.Roads = append(layout.Roads, Band{Y: y, Height: w.RoadHeight})
		layout.Lanes = append(layout.Lanes,
			Band{Y: y, Height: laneHeight},
			Band{Y: y + laneHeight, Height: laneHeight},
		)
	}

	top := Band{Y: w.Height - cfg.Player.Height, Height: cfg.Player.Height}
	bottom := Band{Y: 0, Height: cfg.Player.Height}
	if cfg.Scoring.GoalEdge == GoalBottom {
		layout.Goal, layout.Start = bottom, top
	} else {
		layout.Goal, layout.Start = top, bottom
	}
	return layout
}
